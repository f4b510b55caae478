// Package notify implements the late-loan reminder job: once a day it
// collects every late loan and dispatches one templated message to the
// borrowers' addresses.
package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"libraryapi/internal/loan"
	"libraryapi/internal/metrics"
)

const mailSubject = "Late loaned book"

// LateLoanSource supplies the loans the job should remind about.
type LateLoanSource interface {
	GetAllLateLoans(ctx context.Context) ([]loan.Loan, error)
}

// TimeOfDay is the wall-clock moment the job fires each day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// LateLoanNotifier runs the daily reminder job. It shares no mutable state
// with the request path beyond read access to the same store.
type LateLoanNotifier struct {
	loans   LateLoanSource
	mailer  Mailer
	message string
	at      TimeOfDay
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewLateLoanNotifier(loans LateLoanSource, mailer Mailer, message string, at TimeOfDay, m *metrics.Metrics) *LateLoanNotifier {
	return &LateLoanNotifier{
		loans:   loans,
		mailer:  mailer,
		message: message,
		at:      at,
		metrics: m,
		now:     time.Now,
	}
}

// Start runs the job loop on the calling goroutine until ctx is done. The
// composition root launches it with `go notifier.Start(ctx)`.
func (n *LateLoanNotifier) Start(ctx context.Context) {
	for {
		wait := time.Until(n.nextRun(n.now()))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := n.RunOnce(ctx); err != nil {
				log.Printf("late loan notification failed: %v", err)
			}
		}
	}
}

// RunOnce executes a single firing: query late loans, project the customer
// emails, dispatch one batched message. No retry happens here.
func (n *LateLoanNotifier) RunOnce(ctx context.Context) error {
	n.metrics.LateLoanRuns.Inc()

	lateLoans, err := n.loans.GetAllLateLoans(ctx)
	if err != nil {
		return fmt.Errorf("query late loans: %w", err)
	}
	if len(lateLoans) == 0 {
		return nil
	}

	recipients := make([]string, 0, len(lateLoans))
	for _, l := range lateLoans {
		recipients = append(recipients, l.CustomerEmail)
	}

	if err := n.mailer.SendMail(mailSubject, n.message, recipients); err != nil {
		return fmt.Errorf("send reminders: %w", err)
	}

	n.metrics.LateLoanReminders.Add(float64(len(recipients)))
	log.Printf("late loan reminders sent count=%d", len(recipients))
	return nil
}

func (n *LateLoanNotifier) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), n.at.Hour, n.at.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
