// model/rental.go
package model

import "time"

// Rental links one student to one book. Rentals are soft-closed: a return
// sets Returned instead of deleting the row, so loan history survives.
type Rental struct {
	ID           int64      `json:"id"`
	StudentID    int64      `json:"student_id"`
	BookID       int64      `json:"book_id"`
	Returned     bool       `json:"returned"`
	LoanDate     time.Time  `json:"loan_date"`
	DueDate      time.Time  `json:"due_date"`
	ExtendedDate *time.Time `json:"extended_date,omitempty"`
}

// EffectiveDue is the date the book is actually expected back: the extended
// date when the loan was extended, the original due date otherwise.
func (r *Rental) EffectiveDue() time.Time {
	if r.ExtendedDate != nil {
		return *r.ExtendedDate
	}
	return r.DueDate
}
