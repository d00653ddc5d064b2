package request_models

type AdjustCreditsRequest struct {
	Amount int  `json:"amount" binding:"required,gt=0"`
	IsAdd  bool `json:"is_add"`
}

type ToggleFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// BulkCreateUsersRequest accepts either an explicit email list or a raw CSV
// payload (one address per line) exported from the old admin UI.
type BulkCreateUsersRequest struct {
	Emails         []string `json:"emails"`
	CSV            string   `json:"csv"`
	DefaultCredits int      `json:"default_credits"`
}
