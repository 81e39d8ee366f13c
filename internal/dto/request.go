package dto

type WhereUsedRequest struct {
	DocType  string `form:"doc_type" binding:"required"`
	Document string `form:"document" binding:"required"`
}

type DMRRequest struct {
	Part string `form:"part" binding:"required"`
}

type RevokeLinkRequest struct {
	Link string `json:"link" binding:"required"`
}
