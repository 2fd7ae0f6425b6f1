package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shermawns/Library-API/model"
)

var (
	ErrNotFound   = errors.New("book not found")
	ErrISBNTaken  = errors.New("isbn already registered")
	ErrHasRentals = errors.New("book has rental history")
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	ByISBN(ctx context.Context, isbn string) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Book, error)
}

// UpdateReq carries the fields a catalog update may touch. Nil means
// "leave as is". Status is deliberately absent: lifecycle state belongs
// to the rental service alone.
type UpdateReq struct {
	Title     *string
	Author    *string
	Publisher *string
	Year      *int
	ISBN      *string
	Category  *string
}

type Service interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, id int64, req UpdateReq) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	DetailByISBN(ctx context.Context, isbn string) (*model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) error {
	if _, err := s.r.ByISBN(ctx, b.ISBN); err == nil {
		return ErrISBNTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	b.Status = model.BookAvailable
	if err := s.r.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return ErrISBNTaken
		}
		return err
	}
	return nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateReq) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Publisher != nil {
		b.Publisher = *req.Publisher
	}
	if req.Year != nil {
		b.Year = *req.Year
	}
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	if req.Category != nil {
		b.Category = *req.Category
	}

	if err := s.r.Update(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrISBNTaken
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrHasRentals
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) DetailByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	b, err := s.r.ByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
