package rental

type RentReq struct {
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	BookID    int64  `json:"book_id" validate:"required,gt=0"`
	DueDate   string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type ExtendReq struct {
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
}
