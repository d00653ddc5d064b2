package db_models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Avatar is one generated marketing persona. The twelve narrative sections
// are jsonb columns holding the canonical shapes from sections.go; rows
// written by older schema versions are normalized on load, never on disk.
type Avatar struct {
	BaseModel
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	ClerkUserID string    `gorm:"index" json:"clerk_user_id"`
	UserEmail   string    `json:"user_email"`

	Name string `json:"name"`

	Details         datatypes.JSON `gorm:"type:jsonb" json:"details"`
	Story           datatypes.JSON `gorm:"type:jsonb" json:"story"`
	CurrentWants    datatypes.JSON `gorm:"type:jsonb" json:"current_wants"`
	PainPoints      datatypes.JSON `gorm:"type:jsonb" json:"pain_points"`
	Desires         datatypes.JSON `gorm:"type:jsonb" json:"desires"`
	OfferResults    datatypes.JSON `gorm:"type:jsonb" json:"offer_results"`
	BiggestProblem  datatypes.JSON `gorm:"type:jsonb" json:"biggest_problem"`
	Humiliation     datatypes.JSON `gorm:"type:jsonb" json:"humiliation"`
	Frustrations    datatypes.JSON `gorm:"type:jsonb" json:"frustrations"`
	Complaints      datatypes.JSON `gorm:"type:jsonb" json:"complaints"`
	CostOfNotBuying datatypes.JSON `gorm:"type:jsonb" json:"cost_of_not_buying"`
	BiggestWant     datatypes.JSON `gorm:"type:jsonb" json:"biggest_want"`

	TargetAudience  string `json:"target_audience"`
	HelpDescription string `json:"help_description"`
	ImageURL        string `json:"image_url"`
	ImageKeyword    string `json:"image_keyword"`
}

func (Avatar) TableName() string { return "avatars" }

// sectionColumns returns pointers to every list-section column, keyed by the
// wire name used in section-regeneration requests.
func (a *Avatar) sectionColumns() map[string]*datatypes.JSON {
	return map[string]*datatypes.JSON{
		"story":              &a.Story,
		"current-wants":      &a.CurrentWants,
		"pain-points":        &a.PainPoints,
		"desires":            &a.Desires,
		"offer-results":      &a.OfferResults,
		"biggest-problem":    &a.BiggestProblem,
		"humiliation":        &a.Humiliation,
		"frustrations":       &a.Frustrations,
		"complaints":         &a.Complaints,
		"cost-of-not-buying": &a.CostOfNotBuying,
		"biggest-want":       &a.BiggestWant,
	}
}

// SectionNames lists the valid wire names for section regeneration.
func SectionNames() []string {
	return []string{
		"story", "current-wants", "pain-points", "desires", "offer-results",
		"biggest-problem", "humiliation", "frustrations", "complaints",
		"cost-of-not-buying", "biggest-want",
	}
}

// IsSectionName reports whether name identifies a regenerable section.
func IsSectionName(name string) bool {
	a := Avatar{}
	_, ok := a.sectionColumns()[name]
	return ok
}

// SetSection overwrites one list section with a canonical value.
func (a *Avatar) SetSection(name string, s Section) bool {
	col, ok := a.sectionColumns()[name]
	if !ok {
		return false
	}
	*col = MarshalSection(s)
	return true
}

// Normalize rewrites every section column into the canonical shape. Personas
// saved under historical schema versions stored pre-rendered strings,
// {main, subPoints} objects or arrays of them; this is the single migration
// point, applied when a row is loaded.
func (a *Avatar) Normalize() {
	a.Details = MarshalDetails(NormalizeDetails(a.Details))
	for _, col := range a.sectionColumns() {
		*col = MarshalSection(NormalizeSection(*col))
	}
}

// DetailsMap decodes the details column into the canonical flat map.
func (a *Avatar) DetailsMap() map[string]string {
	return NormalizeDetails(a.Details)
}

var nameCleanRe = regexp.MustCompile(`[^\w\s-]`)

// DeriveName builds the display name shown in the avatar list,
// "<name> - <career>" when both are present.
func DeriveName(details map[string]string) string {
	name := nameCleanRe.ReplaceAllString(details["name"], "")
	career := details["career"]
	if career == "" {
		career = details["profession"]
	}
	career = nameCleanRe.ReplaceAllString(career, "")

	name = strings.TrimSpace(name)
	career = strings.TrimSpace(career)
	if name != "" && career != "" {
		return name + " - " + career
	}
	return "Unnamed Avatar"
}
