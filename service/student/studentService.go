package studentsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shermawns/Library-API/model"
)

var (
	ErrNotFound        = errors.New("student not found")
	ErrEnrollmentTaken = errors.New("enrollment already registered")
	ErrEmailTaken      = errors.New("email already in use")
	ErrHasRentals      = errors.New("student has rental history")
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

// UpdateReq carries optional fields; nil leaves the current value.
type UpdateReq struct {
	Name       *string
	Enrollment *string
	Email      *string
}

type Service interface {
	Create(ctx context.Context, st *model.Student) error
	Update(ctx context.Context, id int64, req UpdateReq) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Student, error)
	Detail(ctx context.Context, id int64) (*model.Student, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, st *model.Student) error {
	if _, err := s.r.ByEnrollment(ctx, st.Enrollment); err == nil {
		return ErrEnrollmentTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if st.Email != "" {
		if _, err := s.r.ByEmail(ctx, st.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}

	if err := s.r.Create(ctx, st); err != nil {
		if derr := mapDuplicate(err); derr != nil {
			return derr
		}
		return err
	}
	return nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateReq) (*model.Student, error) {
	st, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Enrollment != nil {
		st.Enrollment = *req.Enrollment
	}
	if req.Email != nil {
		st.Email = *req.Email
	}

	if err := s.r.Update(ctx, st); err != nil {
		if derr := mapDuplicate(err); derr != nil {
			return nil, derr
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasRentals
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Student, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Student, error) {
	st, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

// mapDuplicate turns a Postgres unique violation into the matching
// sentinel, nil when the error is something else.
func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	cn := strings.ToLower(pgErr.ConstraintName)
	msg := strings.ToLower(pgErr.Message)
	if strings.Contains(cn, "email") || strings.Contains(msg, "email") {
		return ErrEmailTaken
	}
	return ErrEnrollmentTaken
}
