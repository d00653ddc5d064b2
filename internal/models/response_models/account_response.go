package response_models

import "avatarforge/internal/models/db_models"

// AccountResponse is the /me payload: the account row plus the authorization
// verdict so the client can render the pending-approval state without a
// second request.
type AccountResponse struct {
	User       db_models.User `json:"user"`
	Authorized bool           `json:"authorized"`
}

type CreditsResponse struct {
	Credits int `json:"credits"`
}
