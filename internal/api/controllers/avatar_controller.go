package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"avatarforge/internal/models/request_models"
	"avatarforge/internal/services"
	"avatarforge/pkg/middleware"
	"avatarforge/pkg/utils"
)

type AvatarController struct {
	avatarService services.AvatarServiceInterface
}

func NewAvatarController(avatarService services.AvatarServiceInterface) *AvatarController {
	return &AvatarController{
		avatarService: avatarService,
	}
}

// List godoc
// @Summary List the caller's avatars
// @Description Returns all avatars owned by the caller, newest first
// @Tags Avatars
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /avatars [get]
func (a *AvatarController) List(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	avatars, err := a.avatarService.List(c.Request.Context(), account.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, avatars, "")
}

// Update godoc
// @Summary Edit an avatar
// @Description Replaces the provided sections and fields; anything omitted keeps its stored value
// @Tags Avatars
// @Accept json
// @Produce json
// @Param id path string true "Avatar id"
// @Param request body request_models.UpdateAvatarRequest true "Fields to replace"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /avatars/{id} [put]
func (a *AvatarController) Update(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	avatarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid avatar id")
		return
	}

	var req request_models.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	avatar, err := a.avatarService.Update(c.Request.Context(), account, avatarID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, avatar, "Avatar updated")
}

// Delete godoc
// @Summary Delete an avatar
// @Description Removes the avatar; the credit spent on it stays spent
// @Tags Avatars
// @Produce json
// @Param id path string true "Avatar id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /avatars/{id} [delete]
func (a *AvatarController) Delete(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	avatarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid avatar id")
		return
	}

	if err := a.avatarService.Delete(c.Request.Context(), account, avatarID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Avatar deleted")
}
