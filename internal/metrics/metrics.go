// Package metrics holds the Prometheus instrumentation for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	BooksCreated      prometheus.Counter
	LoansCreated      prometheus.Counter
	LoansReturned     prometheus.Counter
	LateLoanRuns      prometheus.Counter
	LateLoanReminders prometheus.Counter
}

// New creates and registers all metrics on the given registerer. Tests pass
// a fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BooksCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "library_books_created_total",
			Help: "Total number of books registered.",
		}),
		LoansCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "library_loans_created_total",
			Help: "Total number of loans created.",
		}),
		LoansReturned: factory.NewCounter(prometheus.CounterOpts{
			Name: "library_loans_returned_total",
			Help: "Total number of loans marked returned.",
		}),
		LateLoanRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "library_late_loan_job_runs_total",
			Help: "Total number of late-loan notification job runs.",
		}),
		LateLoanReminders: factory.NewCounter(prometheus.CounterOpts{
			Name: "library_late_loan_reminders_total",
			Help: "Total number of late-loan reminder emails dispatched.",
		}),
	}
}
