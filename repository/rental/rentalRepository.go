// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Shermawns/Library-API/model"
)

// RankRow is one line of the "who rents the most" aggregate.
type RankRow struct {
	StudentName  string `json:"student_name"`
	TotalRentals int64  `json:"total_rentals"`
}

type Repo interface {
	Insert(ctx context.Context, rt *model.Rental) error
	ByID(ctx context.Context, id int64) (*model.Rental, error)
	Close(ctx context.Context, id int64) error
	Extend(ctx context.Context, id int64, newDue time.Time) error
	ByStudent(ctx context.Context, studentID int64) ([]model.Rental, error)
	ByBook(ctx context.Context, bookID int64) ([]model.Rental, error)
	ListAll(ctx context.Context) ([]model.Rental, error)
	ListByBookStatus(ctx context.Context, st model.BookStatus) ([]model.Rental, error)
	Rank(ctx context.Context) ([]RankRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const rentalCols = `id, student_id, book_id, returned, loan_date, due_date, extended_date`

func (r *repo) Insert(ctx context.Context, rt *model.Rental) error {
	const q = `
INSERT INTO tb_rental (student_id, book_id, returned, loan_date, due_date)
VALUES ($1,$2,FALSE,$3,$4)
RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		rt.StudentID, rt.BookID, rt.LoanDate, rt.DueDate,
	).Scan(&rt.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Rental, error) {
	const q = `SELECT ` + rentalCols + ` FROM tb_rental WHERE id = $1`
	rt := &model.Rental{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rt.ID, &rt.StudentID, &rt.BookID, &rt.Returned,
		&rt.LoanDate, &rt.DueDate, &rt.ExtendedDate,
	)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *repo) Close(ctx context.Context, id int64) error {
	const q = `
UPDATE tb_rental
SET returned = TRUE
WHERE id = $1
AND returned = FALSE`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Extend(ctx context.Context, id int64, newDue time.Time) error {
	// due_date stays untouched so the original deadline survives for audit.
	const q = `
UPDATE tb_rental
SET extended_date = $2
WHERE id = $1
AND returned = FALSE`
	res, err := r.db.ExecContext(ctx, q, id, newDue)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ByStudent(ctx context.Context, studentID int64) ([]model.Rental, error) {
	const q = `SELECT ` + rentalCols + ` FROM tb_rental WHERE student_id = $1 ORDER BY id`
	return r.queryMany(ctx, q, studentID)
}

func (r *repo) ByBook(ctx context.Context, bookID int64) ([]model.Rental, error) {
	const q = `SELECT ` + rentalCols + ` FROM tb_rental WHERE book_id = $1 ORDER BY id`
	return r.queryMany(ctx, q, bookID)
}

func (r *repo) ListAll(ctx context.Context) ([]model.Rental, error) {
	const q = `SELECT ` + rentalCols + ` FROM tb_rental ORDER BY id`
	return r.queryMany(ctx, q)
}

func (r *repo) ListByBookStatus(ctx context.Context, st model.BookStatus) ([]model.Rental, error) {
	const q = `
SELECT r.id, r.student_id, r.book_id, r.returned, r.loan_date, r.due_date, r.extended_date
FROM tb_rental r
JOIN tb_book b ON b.id = r.book_id
WHERE b.status = $1
AND r.returned = FALSE
ORDER BY r.id`
	return r.queryMany(ctx, q, st)
}

func (r *repo) Rank(ctx context.Context) ([]RankRow, error) {
	// Name is the secondary key so equal counts come back in a stable order.
	const q = `
SELECT s.name, COUNT(*) AS total_rentals
FROM tb_rental r
JOIN tb_student s ON s.id = r.student_id
GROUP BY s.name
ORDER BY total_rentals DESC, s.name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RankRow
	for rows.Next() {
		var rr RankRow
		if err := rows.Scan(&rr.StudentName, &rr.TotalRentals); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *repo) queryMany(ctx context.Context, q string, args ...any) ([]model.Rental, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var rt model.Rental
		if err := rows.Scan(
			&rt.ID, &rt.StudentID, &rt.BookID, &rt.Returned,
			&rt.LoanDate, &rt.DueDate, &rt.ExtendedDate,
		); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
