package studentsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shermawns/Library-API/model"
	studentsvc "github.com/Shermawns/Library-API/service/student"
)

type repoMock struct {
	createFn       func(ctx context.Context, s *model.Student) error
	byIDFn         func(ctx context.Context, id int64) (*model.Student, error)
	byEnrollmentFn func(ctx context.Context, enrollment string) (*model.Student, error)
	byEmailFn      func(ctx context.Context, email string) (*model.Student, error)
	updateFn       func(ctx context.Context, s *model.Student) error
	deleteFn       func(ctx context.Context, id int64) error
	listFn         func(ctx context.Context) ([]model.Student, error)
}

func (m *repoMock) Create(ctx context.Context, s *model.Student) error { return m.createFn(ctx, s) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Student, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByEnrollment(ctx context.Context, enrollment string) (*model.Student, error) {
	return m.byEnrollmentFn(ctx, enrollment)
}
func (m *repoMock) ByEmail(ctx context.Context, email string) (*model.Student, error) {
	return m.byEmailFn(ctx, email)
}
func (m *repoMock) Update(ctx context.Context, s *model.Student) error { return m.updateFn(ctx, s) }
func (m *repoMock) Delete(ctx context.Context, id int64) error         { return m.deleteFn(ctx, id) }
func (m *repoMock) List(ctx context.Context) ([]model.Student, error)  { return m.listFn(ctx) }

func noRows[T any](ctx context.Context, _ T) (*model.Student, error) { return nil, sql.ErrNoRows }

func TestCreate_Success(t *testing.T) {
	var got *model.Student
	m := &repoMock{
		byEnrollmentFn: noRows[string],
		byEmailFn:      noRows[string],
		createFn:       func(ctx context.Context, s *model.Student) error { got = s; return nil },
	}
	s := studentsvc.New(m)

	st := &model.Student{Name: "Alice", Enrollment: "2026001", Email: "alice@school.example"}
	if err := s.Create(context.Background(), st); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got == nil || got.Enrollment != "2026001" {
		t.Fatalf("repo not called with the student: %+v", got)
	}
}

func TestCreate_EnrollmentTaken(t *testing.T) {
	m := &repoMock{
		byEnrollmentFn: func(ctx context.Context, enrollment string) (*model.Student, error) {
			return &model.Student{ID: 1, Enrollment: enrollment}, nil
		},
	}
	s := studentsvc.New(m)

	err := s.Create(context.Background(), &model.Student{Enrollment: "dup"})
	if !errors.Is(err, studentsvc.ErrEnrollmentTaken) {
		t.Fatalf("got %v; want ErrEnrollmentTaken", err)
	}
}

func TestCreate_EmailTaken(t *testing.T) {
	m := &repoMock{
		byEnrollmentFn: noRows[string],
		byEmailFn: func(ctx context.Context, email string) (*model.Student, error) {
			return &model.Student{ID: 1, Email: email}, nil
		},
	}
	s := studentsvc.New(m)

	err := s.Create(context.Background(), &model.Student{Enrollment: "e1", Email: "dup@x"})
	if !errors.Is(err, studentsvc.ErrEmailTaken) {
		t.Fatalf("got %v; want ErrEmailTaken", err)
	}
}

func TestCreate_EmptyEmailSkipsEmailCheck(t *testing.T) {
	m := &repoMock{
		byEnrollmentFn: noRows[string],
		byEmailFn: func(ctx context.Context, email string) (*model.Student, error) {
			t.Fatal("ByEmail must not be called for empty email")
			return nil, nil
		},
		createFn: func(ctx context.Context, s *model.Student) error { return nil },
	}
	s := studentsvc.New(m)

	if err := s.Create(context.Background(), &model.Student{Enrollment: "e1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreate_DuplicateFromDB(t *testing.T) {
	// the prechecks can race; map the index violation by constraint name
	m := &repoMock{
		byEnrollmentFn: noRows[string],
		byEmailFn:      noRows[string],
		createFn: func(ctx context.Context, s *model.Student) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "tb_student_email_key"}
		},
	}
	s := studentsvc.New(m)

	err := s.Create(context.Background(), &model.Student{Enrollment: "e1", Email: "a@x"})
	if !errors.Is(err, studentsvc.ErrEmailTaken) {
		t.Fatalf("got %v; want ErrEmailTaken", err)
	}

	m.createFn = func(ctx context.Context, s *model.Student) error {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "tb_student_enrollment_key"}
	}
	err = s.Create(context.Background(), &model.Student{Enrollment: "e1"})
	if !errors.Is(err, studentsvc.ErrEnrollmentTaken) {
		t.Fatalf("got %v; want ErrEnrollmentTaken", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	var saved *model.Student
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Student, error) {
			return &model.Student{ID: id, Name: "old", Enrollment: "e1", Email: "old@x"}, nil
		},
		updateFn: func(ctx context.Context, s *model.Student) error { saved = s; return nil },
	}
	s := studentsvc.New(m)

	name := "Alice"
	st, err := s.Update(context.Background(), 3, studentsvc.UpdateReq{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if st.Name != "Alice" {
		t.Fatalf("name not applied: %+v", st)
	}
	if saved.Enrollment != "e1" || saved.Email != "old@x" {
		t.Fatal("nil fields must be left alone")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{byIDFn: noRows[int64]}
	s := studentsvc.New(m)

	if _, err := s.Update(context.Background(), 404, studentsvc.UpdateReq{}); !errors.Is(err, studentsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	m := &repoMock{deleteFn: func(ctx context.Context, id int64) error { return nil }}
	s := studentsvc.New(m)
	if err := s.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete: %v", err)
	}

	m.deleteFn = func(ctx context.Context, id int64) error { return sql.ErrNoRows }
	if err := s.Delete(context.Background(), 404); !errors.Is(err, studentsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}

	m.deleteFn = func(ctx context.Context, id int64) error {
		return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	}
	if err := s.Delete(context.Background(), 3); !errors.Is(err, studentsvc.ErrHasRentals) {
		t.Fatalf("got %v; want ErrHasRentals", err)
	}
}

func TestDetail(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Student, error) {
			return &model.Student{ID: id, Name: "Alice"}, nil
		},
	}
	s := studentsvc.New(m)

	st, err := s.Detail(context.Background(), 3)
	if err != nil || st.Name != "Alice" {
		t.Fatalf("got %+v, %v", st, err)
	}

	m.byIDFn = noRows[int64]
	if _, err := s.Detail(context.Background(), 404); !errors.Is(err, studentsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
