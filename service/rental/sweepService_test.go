package rentalsvc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Shermawns/Library-API/model"
	rentalsvc "github.com/Shermawns/Library-API/service/rental"
)

func TestSweep_FlipsBooksPastDue(t *testing.T) {
	f := newFixture()
	f.addStudent(1, "Alice", "")
	f.addBook(10, "Clean Code", model.BookAvailable)
	f.addBook(11, "SICP", model.BookAvailable)

	// one rental past due, one still in the future
	late, err := f.svc.Rent(context.Background(), 1, 10, days(-1))
	require.NoError(t, err)
	_, err = f.svc.Rent(context.Background(), 1, 11, days(7))
	require.NoError(t, err)

	flipped, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, flipped)
	require.Equal(t, model.BookOverdue, f.books.m[10].Status)
	require.Equal(t, model.BookLoaned, f.books.m[11].Status)

	overdue, err := f.svc.ListOverdue(context.Background())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, late.ID, overdue[0].ID)

	active, err := f.svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestSweep_Idempotent(t *testing.T) {
	f := newFixture()
	f.addStudent(1, "Alice", "")
	f.addBook(10, "Clean Code", model.BookAvailable)
	_, err := f.svc.Rent(context.Background(), 1, 10, days(-3))
	require.NoError(t, err)

	flipped, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, flipped)

	calls := f.books.setStatusCalls
	flipped, err = f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, flipped, "already-overdue books are not flipped again")
	require.Equal(t, calls, f.books.setStatusCalls, "second sweep must not write at all")
}

func TestSweep_DueTodayIsNotOverdue(t *testing.T) {
	f := newFixture()
	f.addStudent(1, "Alice", "")
	f.addBook(10, "Clean Code", model.BookAvailable)
	_, err := f.svc.Rent(context.Background(), 1, 10, days(0))
	require.NoError(t, err)

	flipped, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, flipped)
	require.Equal(t, model.BookLoaned, f.books.m[10].Status)
}

func TestSweep_ExtensionDefersOverdue(t *testing.T) {
	f := newFixture()
	f.addStudent(1, "Alice", "")
	f.addBook(10, "Clean Code", model.BookAvailable)
	rt, err := f.svc.Rent(context.Background(), 1, 10, days(-2))
	require.NoError(t, err)

	require.NoError(t, f.svc.Extend(context.Background(), rt.ID, days(5)))

	flipped, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, flipped, "the extended date is the one that counts")
	require.Equal(t, model.BookLoaned, f.books.m[10].Status)
}

func TestSweep_IgnoresClosedRentals(t *testing.T) {
	f := newFixture()
	f.addStudent(1, "Alice", "")
	f.addStudent(2, "Bob", "")
	f.addBook(10, "Clean Code", model.BookAvailable)

	// a stale closed rental of the same book must not flag Bob's fresh one
	rt, err := f.svc.Rent(context.Background(), 1, 10, days(-5))
	require.NoError(t, err)
	require.NoError(t, f.svc.Return(context.Background(), rt.ID))
	_, err = f.svc.Rent(context.Background(), 2, 10, days(7))
	require.NoError(t, err)

	flipped, err := f.svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, flipped)
	require.Equal(t, model.BookLoaned, f.books.m[10].Status)
}

func TestSweep_ContinuesPastFailures(t *testing.T) {
	f := newFixture()
	f.addStudent(1, "Alice", "")
	f.addBook(10, "Clean Code", model.BookAvailable)
	f.addBook(11, "SICP", model.BookAvailable)
	_, err := f.svc.Rent(context.Background(), 1, 10, days(-1))
	require.NoError(t, err)
	_, err = f.svc.Rent(context.Background(), 1, 11, days(-1))
	require.NoError(t, err)

	f.books.setStatusErrOn[10] = errors.New("write failed")

	flipped, err := f.svc.SweepOverdue(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, flipped, "the healthy record still gets flipped")
	require.Equal(t, model.BookLoaned, f.books.m[10].Status)
	require.Equal(t, model.BookOverdue, f.books.m[11].Status)
}

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	f := newFixture()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := rentalsvc.NewScheduler(f.svc, 5*time.Millisecond, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return f.ledger.listAllCalls.Load() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
