// repository/student/studentRepository.go
package studentrepo

import (
	"context"
	"database/sql"

	"github.com/Shermawns/Library-API/model"
)

type Repo interface {
	Create(ctx context.Context, s *model.Student) error
	ByID(ctx context.Context, id int64) (*model.Student, error)
	ByEnrollment(ctx context.Context, enrollment string) (*model.Student, error)
	ByEmail(ctx context.Context, email string) (*model.Student, error)
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Student, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const studentCols = `id, name, enrollment, email, created_at, updated_at`

func (r *repo) Create(ctx context.Context, s *model.Student) error {
	const q = `
INSERT INTO tb_student (name, enrollment, email)
VALUES ($1,$2,$3)
RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q, s.Name, s.Enrollment, s.Email).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Student, error) {
	const q = `SELECT ` + studentCols + ` FROM tb_student WHERE id = $1`
	return scanStudent(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) ByEnrollment(ctx context.Context, enrollment string) (*model.Student, error) {
	const q = `SELECT ` + studentCols + ` FROM tb_student WHERE enrollment = $1`
	return scanStudent(r.db.QueryRowContext(ctx, q, enrollment))
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Student, error) {
	const q = `SELECT ` + studentCols + ` FROM tb_student WHERE lower(email) = lower($1)`
	return scanStudent(r.db.QueryRowContext(ctx, q, email))
}

func scanStudent(row *sql.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.Enrollment, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) Update(ctx context.Context, s *model.Student) error {
	const q = `
UPDATE tb_student
SET name = $2, enrollment = $3, email = $4, updated_at = NOW()
WHERE id = $1
RETURNING updated_at`
	return r.db.QueryRowContext(ctx, q, s.ID, s.Name, s.Enrollment, s.Email).
		Scan(&s.UpdatedAt)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_student WHERE id = $1`, id)
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

func (r *repo) List(ctx context.Context) ([]model.Student, error) {
	const q = `SELECT ` + studentCols + ` FROM tb_student ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Enrollment, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
