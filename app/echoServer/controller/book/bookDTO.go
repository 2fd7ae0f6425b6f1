package book

type CreateBookReq struct {
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Publisher string `json:"publisher"`
	Year      int    `json:"year" validate:"omitempty,gte=0"`
	ISBN      string `json:"isbn" validate:"required"`
	Category  string `json:"category" validate:"required"`
}

// UpdateBookReq: pointers so an absent field is left untouched. Status is
// not accepted here; only the rental lifecycle moves it.
type UpdateBookReq struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Publisher *string `json:"publisher"`
	Year      *int    `json:"year" validate:"omitempty,gte=0"`
	ISBN      *string `json:"isbn"`
	Category  *string `json:"category"`
}
