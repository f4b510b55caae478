package loan

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/pagination"
)

const (
	dialectPostgres         = "postgres"
	pgUniqueViolation       = "23505"
	loansOutstandingUniqKey = "loans_book_outstanding_key"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, l *Loan) error {
	const query = `
	INSERT INTO loans (book_id, customer, customer_email, loan_date, returned)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, l.BookID, l.Customer, l.CustomerEmail, l.LoanDate, l.Returned).Scan(&l.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == loansOutstandingUniqKey {
			return ErrBookAlreadyLoaned
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Loan, error) {
	const query = `
	SELECT id, book_id, customer, customer_email, loan_date, returned
	FROM loans
	WHERE id = $1
	LIMIT 1
	`
	var l Loan
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&l.ID, &l.BookID, &l.Customer, &l.CustomerEmail, &l.LoanDate, &l.Returned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) ExistsOutstandingByBook(ctx context.Context, bookID int64) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM loans
		WHERE book_id = $1 AND returned IS NOT TRUE
	)
	`
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, bookID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) Update(ctx context.Context, l *Loan) error {
	const query = `
	UPDATE loans
	SET book_id = $2, customer = $3, customer_email = $4, loan_date = $5, returned = $6
	WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, l.ID, l.BookID, l.Customer, l.CustomerEmail, l.LoanDate, l.Returned)
	return err
}

// Find joins loans with books and OR-combines the filter's non-empty
// predicates.
func (r *PostgresRepo) Find(ctx context.Context, f Filter, req pagination.PageRequest) ([]WithBook, int, error) {
	where := make([]goqu.Expression, 0, 2)
	if f.ISBN != "" {
		where = append(where, goqu.Ex{"books.isbn": f.ISBN})
	}
	if f.Customer != "" {
		where = append(where, goqu.Ex{"loans.customer": f.Customer})
	}

	dialect := goqu.Dialect(dialectPostgres)
	base := dialect.
		From("loans").
		Join(goqu.T("books"), goqu.On(goqu.I("loans.book_id").Eq(goqu.I("books.id"))))
	if len(where) > 0 {
		base = base.Where(goqu.Or(where...))
	}

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL, dataArgs, err := base.
		Select(
			"loans.id", "loans.book_id", "loans.customer", "loans.customer_email",
			"loans.loan_date", "loans.returned",
			"books.id", "books.title", "books.author", "books.isbn",
		).
		Order(goqu.I("loans.id").Asc()).
		Limit(uint(req.PageSize)).
		Offset(uint(req.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []WithBook
	for rows.Next() {
		var lb WithBook
		if err := rows.Scan(
			&lb.ID, &lb.BookID, &lb.Customer, &lb.CustomerEmail, &lb.LoanDate, &lb.Returned,
			&lb.Book.ID, &lb.Book.Title, &lb.Book.Author, &lb.Book.ISBN,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, lb)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) FindByBook(ctx context.Context, bookID int64, req pagination.PageRequest) ([]Loan, int, error) {
	const countQuery = `SELECT COUNT(*) FROM loans WHERE book_id = $1`
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countQuery, bookID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataQuery = `
	SELECT id, book_id, customer, customer_email, loan_date, returned
	FROM loans
	WHERE book_id = $1
	ORDER BY id
	LIMIT $2 OFFSET $3
	`
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataQuery, bookID, req.PageSize, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.Customer, &l.CustomerEmail, &l.LoanDate, &l.Returned); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) AllLate(ctx context.Context, cutoff time.Time) ([]Loan, error) {
	const query = `
	SELECT id, book_id, customer, customer_email, loan_date, returned
	FROM loans
	WHERE loan_date < $1 AND returned IS NOT TRUE
	ORDER BY loan_date
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.Customer, &l.CustomerEmail, &l.LoanDate, &l.Returned); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
