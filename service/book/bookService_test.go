package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shermawns/Library-API/model"
	booksvc "github.com/Shermawns/Library-API/service/book"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) error
	byIDFn   func(ctx context.Context, id int64) (*model.Book, error)
	byISBNFn func(ctx context.Context, isbn string) (*model.Book, error)
	updateFn func(ctx context.Context, b *model.Book) error
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context) ([]model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	return m.byISBNFn(ctx, isbn)
}
func (m *repoMock) Update(ctx context.Context, b *model.Book) error { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) error      { return m.deleteFn(ctx, id) }
func (m *repoMock) List(ctx context.Context) ([]model.Book, error)  { return m.listFn(ctx) }

func noISBN(ctx context.Context, isbn string) (*model.Book, error) { return nil, sql.ErrNoRows }

func TestCreate_ForcesAvailable(t *testing.T) {
	var got *model.Book
	m := &repoMock{
		byISBNFn: noISBN,
		createFn: func(ctx context.Context, b *model.Book) error { got = b; return nil },
	}
	s := booksvc.New(m)

	b := &model.Book{Title: "Clean Code", ISBN: "9780132350884", Status: model.BookOverdue}
	if err := s.Create(context.Background(), b); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Status != model.BookAvailable {
		t.Fatalf("new books must start AVAILABLE, got %s", got.Status)
	}
}

func TestCreate_DuplicateISBN(t *testing.T) {
	m := &repoMock{
		byISBNFn: func(ctx context.Context, isbn string) (*model.Book, error) {
			return &model.Book{ID: 1, ISBN: isbn}, nil
		},
	}
	s := booksvc.New(m)

	err := s.Create(context.Background(), &model.Book{ISBN: "dup"})
	if !errors.Is(err, booksvc.ErrISBNTaken) {
		t.Fatalf("got %v; want ErrISBNTaken", err)
	}
}

func TestCreate_DuplicateISBNFromDB(t *testing.T) {
	// the precheck can race; the unique index is the backstop
	m := &repoMock{
		byISBNFn: noISBN,
		createFn: func(ctx context.Context, b *model.Book) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	s := booksvc.New(m)

	err := s.Create(context.Background(), &model.Book{ISBN: "dup"})
	if !errors.Is(err, booksvc.ErrISBNTaken) {
		t.Fatalf("got %v; want ErrISBNTaken", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	var saved *model.Book
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, Title: "old", Author: "old", Year: 1999, Status: model.BookLoaned}, nil
		},
		updateFn: func(ctx context.Context, b *model.Book) error { saved = b; return nil },
	}
	s := booksvc.New(m)

	title := "new title"
	year := 2008
	b, err := s.Update(context.Background(), 7, booksvc.UpdateReq{Title: &title, Year: &year})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Title != "new title" || b.Year != 2008 {
		t.Fatalf("changed fields not applied: %+v", b)
	}
	if saved.Author != "old" {
		t.Fatal("nil fields must be left alone")
	}
	if saved.Status != model.BookLoaned {
		t.Fatal("update must not touch lifecycle status")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, sql.ErrNoRows },
	}
	s := booksvc.New(m)

	if _, err := s.Update(context.Background(), 404, booksvc.UpdateReq{}); !errors.Is(err, booksvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	m := &repoMock{deleteFn: func(ctx context.Context, id int64) error { return nil }}
	s := booksvc.New(m)
	if err := s.Delete(context.Background(), 7); err != nil {
		t.Fatalf("delete: %v", err)
	}

	m.deleteFn = func(ctx context.Context, id int64) error { return sql.ErrNoRows }
	if err := s.Delete(context.Background(), 404); !errors.Is(err, booksvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}

	m.deleteFn = func(ctx context.Context, id int64) error {
		return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	}
	if err := s.Delete(context.Background(), 7); !errors.Is(err, booksvc.ErrHasRentals) {
		t.Fatalf("got %v; want ErrHasRentals", err)
	}
}

func TestDetail(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, Title: "SICP"}, nil
		},
		byISBNFn: func(ctx context.Context, isbn string) (*model.Book, error) {
			if isbn != "9780262510875" {
				return nil, sql.ErrNoRows
			}
			return &model.Book{ID: 2, ISBN: isbn}, nil
		},
	}
	s := booksvc.New(m)

	b, err := s.Detail(context.Background(), 2)
	if err != nil || b.Title != "SICP" {
		t.Fatalf("got %+v, %v", b, err)
	}

	if _, err := s.DetailByISBN(context.Background(), "missing"); !errors.Is(err, booksvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
	if _, err := s.DetailByISBN(context.Background(), "9780262510875"); err != nil {
		t.Fatalf("detail by isbn: %v", err)
	}
}
