// model/student.go
package model

import "time"

type Student struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Enrollment string    `json:"enrollment"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
