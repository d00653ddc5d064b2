package request_models

type GenerateAvatarRequest struct {
	TargetAudience  string `json:"target_audience" binding:"required"`
	HelpDescription string `json:"help_description" binding:"required"`
	OfferType       string `json:"offer_type"`
}

type GenerateSectionRequest struct {
	AvatarID string `json:"avatar_id" binding:"required,uuid"`
	Section  string `json:"section" binding:"required"`
}

type GenerateImageRequest struct {
	AvatarID string `json:"avatar_id" binding:"required,uuid"`
	Keyword  string `json:"keyword"`
}
