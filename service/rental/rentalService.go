package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Shermawns/Library-API/model"
	rentalrepo "github.com/Shermawns/Library-API/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrStudentNotFound  ErrCode = "STUDENT_NOT_FOUND"
	ErrBookNotFound     ErrCode = "BOOK_NOT_FOUND"
	ErrRentalNotFound   ErrCode = "RENTAL_NOT_FOUND"
	ErrBookNotAvailable ErrCode = "BOOK_NOT_AVAILABLE"
	ErrAlreadyReturned  ErrCode = "ALREADY_RETURNED"
	ErrBadDueDate       ErrCode = "BAD_DUE_DATE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// RankRow = repository shape
type RankRow = rentalrepo.RankRow

// Collaborator contracts. The Postgres repositories satisfy them in
// production; tests plug in doubles.

type BookStore interface {
	ByID(ctx context.Context, id int64) (*model.Book, error)
	// MarkLoaned must be atomic: flip AVAILABLE -> LOANED only if the
	// book is currently AVAILABLE, sql.ErrNoRows otherwise.
	MarkLoaned(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, st model.BookStatus) error
}

type StudentStore interface {
	ByID(ctx context.Context, id int64) (*model.Student, error)
}

type Ledger interface {
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

type Notifier interface {
	Send(to, subject, body string) error
}

type Service interface {
	// Rent: lend an available book to a student until due.
	Rent(ctx context.Context, studentID, bookID int64, due time.Time) (*model.Rental, error)

	// Return: close an open rental and free its book.
	Return(ctx context.Context, rentalID int64) error

	// Extend: push the deadline of an open rental past its current due date.
	Extend(ctx context.Context, rentalID int64, newDue time.Time) error

	ListByStudent(ctx context.Context, studentID int64) ([]model.Rental, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Rental, error)
	ListActive(ctx context.Context) ([]model.Rental, error)
	ListOverdue(ctx context.Context) ([]model.Rental, error)
	RankStudents(ctx context.Context) ([]RankRow, error)

	// SweepOverdue: flip LOANED books past their due date to OVERDUE.
	// Returns how many books were flipped.
	SweepOverdue(ctx context.Context) (int, error)
}

// ----- Service implementation -----

type service struct {
	books    BookStore
	students StudentStore
	ledger   Ledger
	mail     Notifier
	now      func() time.Time
}

func New(books BookStore, students StudentStore, ledger Ledger, mail Notifier) Service {
	return &service{books: books, students: students, ledger: ledger, mail: mail, now: time.Now}
}

// NewWithClock is for tests that need a fixed date.
func NewWithClock(books BookStore, students StudentStore, ledger Ledger, mail Notifier, now func() time.Time) Service {
	return &service{books: books, students: students, ledger: ledger, mail: mail, now: now}
}

func (s *service) Rent(ctx context.Context, studentID, bookID int64, due time.Time) (*model.Rental, error) {
	student, err := s.students.ByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrStudentNotFound)
		}
		return nil, err
	}

	book, err := s.books.ByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}

	// Single conditional write doubles as the availability check, so two
	// racing rent calls cannot both pass it.
	if err := s.books.MarkLoaned(ctx, book.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotAvailable)
		}
		return nil, err
	}

	rt := &model.Rental{
		StudentID: student.ID,
		BookID:    book.ID,
		LoanDate:  dateOf(s.now()),
		DueDate:   dateOf(due),
	}
	if err := s.ledger.Insert(ctx, rt); err != nil {
		// Free the book again, otherwise it stays LOANED with no rental.
		_ = s.books.SetStatus(ctx, book.ID, model.BookAvailable)
		return nil, err
	}

	// Best effort only: a failed mail must not fail the rental.
	if student.Email != "" {
		_ = s.mail.Send(student.Email, rentMailSubject, rentMailBody(student.Name, book.Title, rt.DueDate))
	}

	return rt, nil
}

func (s *service) Return(ctx context.Context, rentalID int64) error {
	rt, err := s.ledger.ByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrRentalNotFound)
		}
		return err
	}
	if rt.Returned {
		return makeErr(ErrAlreadyReturned)
	}

	if err := s.books.SetStatus(ctx, rt.BookID, model.BookAvailable); err != nil {
		return err
	}
	return s.ledger.Close(ctx, rt.ID)
}

func (s *service) Extend(ctx context.Context, rentalID int64, newDue time.Time) error {
	rt, err := s.ledger.ByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrRentalNotFound)
		}
		return err
	}
	if rt.Returned {
		return makeErr(ErrAlreadyReturned)
	}

	newDue = dateOf(newDue)
	if !newDue.After(dateOf(rt.EffectiveDue())) {
		return makeErr(ErrBadDueDate)
	}
	return s.ledger.Extend(ctx, rt.ID, newDue)
}

func (s *service) ListByStudent(ctx context.Context, studentID int64) ([]model.Rental, error) {
	if _, err := s.students.ByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrStudentNotFound)
		}
		return nil, err
	}
	return s.ledger.ByStudent(ctx, studentID)
}

func (s *service) ListByBook(ctx context.Context, bookID int64) ([]model.Rental, error) {
	if _, err := s.books.ByID(ctx, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}
	return s.ledger.ByBook(ctx, bookID)
}

func (s *service) ListActive(ctx context.Context) ([]model.Rental, error) {
	return s.ledger.ListByBookStatus(ctx, model.BookLoaned)
}

func (s *service) ListOverdue(ctx context.Context) ([]model.Rental, error) {
	return s.ledger.ListByBookStatus(ctx, model.BookOverdue)
}

func (s *service) RankStudents(ctx context.Context) ([]RankRow, error) {
	return s.ledger.Rank(ctx)
}

// SweepOverdue walks the whole ledger once. A failing record is reported
// and skipped; stalling the loop would silently defer overdue detection
// for everything behind it.
func (s *service) SweepOverdue(ctx context.Context) (int, error) {
	rentals, err := s.ledger.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	today := dateOf(s.now())
	var flipped int
	var errs []error
	for _, rt := range rentals {
		if rt.Returned || !rt.EffectiveDue().Before(today) {
			continue
		}
		book, err := s.books.ByID(ctx, rt.BookID)
		if err != nil {
			errs = append(errs, fmt.Errorf("rental %d: load book %d: %w", rt.ID, rt.BookID, err))
			continue
		}
		if book.Status != model.BookLoaned {
			continue
		}
		if err := s.books.SetStatus(ctx, book.ID, model.BookOverdue); err != nil {
			errs = append(errs, fmt.Errorf("rental %d: mark book %d overdue: %w", rt.ID, book.ID, err))
			continue
		}
		flipped++
	}
	return flipped, errors.Join(errs...)
}

// dateOf truncates to a calendar date in UTC; loan bookkeeping works in
// whole days.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const rentMailSubject = "Book rental confirmation"

func rentMailBody(studentName, bookTitle string, due time.Time) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"You rented the book %q.\n"+
			"It is due back on %s.\n\n"+
			"Please return it by that date so other students can use it too.\n\n"+
			"Library team",
		studentName, bookTitle, due.Format("2006-01-02"),
	)
}
