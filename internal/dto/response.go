package dto

import (
	"DMR_Link/model"
	"time"
)

// WhereUsedResponse lists the parts referencing a document.
// Classification is null when nothing matched.
type WhereUsedResponse struct {
	DocType        string   `json:"doc_type"`
	Document       string   `json:"document"`
	Parts          []string `json:"parts"`
	Classification *string  `json:"classification"`
}

// DMRResponse carries a bundle and the password opening every link in it.
type DMRResponse struct {
	Part     string           `json:"part"`
	DMR      *model.DMRBundle `json:"dmr"`
	Password string           `json:"password"`
}

// LinkSummary is a tracked link without its password.
type LinkSummary struct {
	ID        string    `json:"id"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

// LinkListResponse lists outstanding links.
type LinkListResponse struct {
	Count int           `json:"count"`
	Links []LinkSummary `json:"links"`
}
