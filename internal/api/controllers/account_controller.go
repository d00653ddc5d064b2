package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"avatarforge/internal/models/response_models"
	"avatarforge/internal/services"
	"avatarforge/pkg/middleware"
	"avatarforge/pkg/utils"
)

type AccountController struct {
	creditService services.CreditServiceInterface
}

func NewAccountController(creditService services.CreditServiceInterface) *AccountController {
	return &AccountController{
		creditService: creditService,
	}
}

// Me godoc
// @Summary Current account
// @Description Returns the caller's account row and whether they may use the product
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /me [get]
func (a *AccountController) Me(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	utils.RespondSuccess(c, response_models.AccountResponse{
		User:       *account,
		Authorized: services.IsAuthorized(account),
	}, "")
}

// Credits godoc
// @Summary Current credit balance
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /credits [get]
func (a *AccountController) Credits(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	utils.RespondSuccess(c, response_models.CreditsResponse{Credits: account.Credits}, "")
}

// CreditHistory godoc
// @Summary Credit ledger for the caller
// @Description Returns the caller's credit log entries, newest first
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /credits/history [get]
func (a *AccountController) CreditHistory(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	entries, err := a.creditService.History(c.Request.Context(), account.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "")
}
