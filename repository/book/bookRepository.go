// repository/book/bookRepository.go
package bookrepo

import (
	"context"
	"database/sql"

	"github.com/Shermawns/Library-API/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	ByISBN(ctx context.Context, isbn string) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Book, error)

	// MarkLoaned flips AVAILABLE -> LOANED in a single conditional
	// update. sql.ErrNoRows means the book was not available, so the
	// check and the flip cannot race.
	MarkLoaned(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, st model.BookStatus) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = `id, title, author, publisher, year, isbn, category, status`

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO tb_book (title, author, publisher, year, isbn, category, status)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Publisher, b.Year, b.ISBN, b.Category, b.Status,
	).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM tb_book WHERE id = $1`
	return scanBook(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) ByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM tb_book WHERE isbn = $1`
	return scanBook(r.db.QueryRowContext(ctx, q, isbn))
}

func scanBook(row *sql.Row) (*model.Book, error) {
	b := &model.Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.ISBN, &b.Category, &b.Status)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
UPDATE tb_book
SET title = $2, author = $3, publisher = $4, year = $5, isbn = $6, category = $7
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Author, b.Publisher, b.Year, b.ISBN, b.Category)
	if err != nil {
		return err
	}
	return oneRowOrNoRows(res)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	// The FK on tb_rental blocks deleting a book with loan history;
	// the service maps that violation.
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_book WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return oneRowOrNoRows(res)
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM tb_book ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.ISBN, &b.Category, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) MarkLoaned(ctx context.Context, id int64) error {
	const q = `
UPDATE tb_book
SET status = $2
WHERE id = $1
AND status = $3`
	res, err := r.db.ExecContext(ctx, q, id, model.BookLoaned, model.BookAvailable)
	if err != nil {
		return err
	}
	return oneRowOrNoRows(res)
}

func (r *repo) SetStatus(ctx context.Context, id int64, st model.BookStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tb_book SET status = $2 WHERE id = $1`, id, st)
	if err != nil {
		return err
	}
	return oneRowOrNoRows(res)
}

func oneRowOrNoRows(res sql.Result) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
