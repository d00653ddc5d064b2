package request_models

import "avatarforge/internal/models/db_models"

// UpdateAvatarRequest replaces whole sections: a present field overwrites the
// stored section entirely, an absent one is left untouched. Last writer wins.
type UpdateAvatarRequest struct {
	Name            *string               `json:"name"`
	Details         map[string]string     `json:"details"`
	Story           *db_models.Section    `json:"story"`
	CurrentWants    *db_models.Section    `json:"current_wants"`
	PainPoints      *db_models.Section    `json:"pain_points"`
	Desires         *db_models.Section    `json:"desires"`
	OfferResults    *db_models.Section    `json:"offer_results"`
	BiggestProblem  *db_models.Section    `json:"biggest_problem"`
	Humiliation     *db_models.Section    `json:"humiliation"`
	Frustrations    *db_models.Section    `json:"frustrations"`
	Complaints      *db_models.Section    `json:"complaints"`
	CostOfNotBuying *db_models.Section    `json:"cost_of_not_buying"`
	BiggestWant     *db_models.Section    `json:"biggest_want"`
	TargetAudience  *string               `json:"target_audience"`
	HelpDescription *string               `json:"help_description"`
	ImageURL        *string               `json:"image_url"`
}

// Sections maps wire section names to the provided replacement values.
func (r *UpdateAvatarRequest) Sections() map[string]*db_models.Section {
	return map[string]*db_models.Section{
		"story":              r.Story,
		"current-wants":      r.CurrentWants,
		"pain-points":        r.PainPoints,
		"desires":            r.Desires,
		"offer-results":      r.OfferResults,
		"biggest-problem":    r.BiggestProblem,
		"humiliation":        r.Humiliation,
		"frustrations":       r.Frustrations,
		"complaints":         r.Complaints,
		"cost-of-not-buying": r.CostOfNotBuying,
		"biggest-want":       r.BiggestWant,
	}
}
