// model/book.go
package model

// BookStatus is the lifecycle state of a book. It is written only by the
// rental service: AVAILABLE -> LOANED on rent, LOANED -> OVERDUE by the
// sweep, and back to AVAILABLE on return.
type BookStatus string

const (
	BookAvailable BookStatus = "AVAILABLE"
	BookLoaned    BookStatus = "LOANED"
	BookOverdue   BookStatus = "OVERDUE"
)

type Book struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Publisher string     `json:"publisher"`
	Year      int        `json:"year,omitempty"`
	ISBN      string     `json:"isbn"`
	Category  string     `json:"category"`
	Status    BookStatus `json:"status"`
}
