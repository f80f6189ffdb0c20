package books

type ListBooksQuery struct {
	Limit      int     `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset     int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	CategoryID *string `query:"category_id" json:"category_id,omitempty" mod:"trim" validate:"omitempty,ident"`
}
