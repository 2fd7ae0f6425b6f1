package student

type CreateStudentReq struct {
	Name       string `json:"name" validate:"required"`
	Enrollment string `json:"enrollment" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
}

type UpdateStudentReq struct {
	Name       *string `json:"name"`
	Enrollment *string `json:"enrollment"`
	Email      *string `json:"email" validate:"omitempty,email"`
}
