package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"avatarforge/internal/models/db_models"
	"avatarforge/internal/models/request_models"
	"avatarforge/internal/services"
	"avatarforge/pkg/middleware"
	"avatarforge/pkg/utils"
)

type AdminController struct {
	adminService services.AdminServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// ListUsers godoc
// @Summary List every account
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/users [get]
func (a *AdminController) ListUsers(c *gin.Context) {
	caller := middleware.AccountFrom(c)

	users, err := a.adminService.ListAccounts(c.Request.Context(), caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "")
}

// AdjustCredits godoc
// @Summary Grant or remove credits on an account
// @Description Admin adjustment; removing may drive the balance negative
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body request_models.AdjustCreditsRequest true "Amount and direction"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/users/{id}/credits [post]
func (a *AdminController) AdjustCredits(c *gin.Context) {
	caller := middleware.AccountFrom(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req request_models.AdjustCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.adminService.AdjustCredits(c.Request.Context(), caller, userID, req.Amount, req.IsAdd)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Credits adjusted")
}

// SetActive godoc
// @Summary Toggle the is_active flag on an account
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body request_models.ToggleFlagRequest true "New value"
// @Success 200 {object} utils.APIResponse
// @Router /admin/users/{id}/active [patch]
func (a *AdminController) SetActive(c *gin.Context) {
	a.toggleFlag(c, a.adminService.SetActive, "Active flag updated")
}

// SetAuthenticated godoc
// @Summary Toggle the is_authenticated flag on an account
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body request_models.ToggleFlagRequest true "New value"
// @Success 200 {object} utils.APIResponse
// @Router /admin/users/{id}/authenticated [patch]
func (a *AdminController) SetAuthenticated(c *gin.Context) {
	a.toggleFlag(c, a.adminService.SetAuthenticated, "Authenticated flag updated")
}

// SetAdmin godoc
// @Summary Grant or revoke admin rights
// @Description Only the super admin may call this
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body request_models.ToggleFlagRequest true "New value"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/users/{id}/admin [patch]
func (a *AdminController) SetAdmin(c *gin.Context) {
	a.toggleFlag(c, a.adminService.SetAdmin, "Admin flag updated")
}

// CreditHistory godoc
// @Summary Credit ledger for any account
// @Tags Admin
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} utils.APIResponse
// @Router /admin/users/{id}/credits/history [get]
func (a *AdminController) CreditHistory(c *gin.Context) {
	caller := middleware.AccountFrom(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	entries, err := a.adminService.CreditHistory(c.Request.Context(), caller, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "")
}

// BulkCreateUsers godoc
// @Summary Import accounts from an email list
// @Description Accepts an email array and/or a CSV blob, one address per line
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.BulkCreateUsersRequest true "Emails to import"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /admin/users/bulk [post]
func (a *AdminController) BulkCreateUsers(c *gin.Context) {
	caller := middleware.AccountFrom(c)

	var req request_models.BulkCreateUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	emails := append([]string{}, req.Emails...)
	for _, line := range strings.Split(req.CSV, "\n") {
		// Tolerate "email,anything" rows from spreadsheet exports.
		if addr := strings.TrimSpace(strings.SplitN(line, ",", 2)[0]); addr != "" {
			emails = append(emails, addr)
		}
	}
	if len(emails) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "No emails provided")
		return
	}

	created, err := a.adminService.BulkCreate(c.Request.Context(), caller, emails, req.DefaultCredits)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"created": created, "count": len(created)}, "Accounts created")
}

// DeleteUser godoc
// @Summary Delete an account and everything it owns
// @Description Removes the user, their avatars and their credit history in one transaction
// @Tags Admin
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/users/{id} [delete]
func (a *AdminController) DeleteUser(c *gin.Context) {
	caller := middleware.AccountFrom(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := a.adminService.DeleteAccount(c.Request.Context(), caller, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account deleted")
}

func (a *AdminController) toggleFlag(
	c *gin.Context,
	op func(ctx context.Context, caller *db_models.User, userID uuid.UUID, value bool) (*db_models.User, error),
	message string,
) {
	caller := middleware.AccountFrom(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req request_models.ToggleFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := op(c.Request.Context(), caller, userID, *req.Value)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, message)
}
