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

type GenerationController struct {
	generationService services.GenerationServiceInterface
}

func NewGenerationController(generationService services.GenerationServiceInterface) *GenerationController {
	return &GenerationController{
		generationService: generationService,
	}
}

// Generate godoc
// @Summary Generate a customer avatar
// @Description Runs the full generation pipeline and charges one credit on success
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body request_models.GenerateAvatarRequest true "Business description"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Router /generate [post]
func (g *GenerationController) Generate(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	var req request_models.GenerateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	avatar, err := g.generationService.Generate(c.Request.Context(), account, req.TargetAudience, req.HelpDescription)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, avatar, "Avatar generated")
}

// GenerateSection godoc
// @Summary Regenerate one section of an avatar
// @Description Produces fresh content for a single named section; free of charge
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body request_models.GenerateSectionRequest true "Avatar id and section name"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /generate-section [post]
func (g *GenerationController) GenerateSection(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	var req request_models.GenerateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	avatarID, err := uuid.Parse(req.AvatarID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid avatar id")
		return
	}

	section, err := g.generationService.RegenerateSection(c.Request.Context(), account, avatarID, req.Section)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"section": req.Section, "content": section}, "Section regenerated")
}

// GenerateImage godoc
// @Summary Regenerate the avatar portrait
// @Description Produces a new headshot, optionally steered by a keyword, and stores it
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body request_models.GenerateImageRequest true "Avatar id and optional keyword"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /generate-image [post]
func (g *GenerationController) GenerateImage(c *gin.Context) {
	account := middleware.AccountFrom(c)
	if account == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	var req request_models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	avatarID, err := uuid.Parse(req.AvatarID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid avatar id")
		return
	}

	imageURL, err := g.generationService.RegenerateImage(c.Request.Context(), account, avatarID, req.Keyword)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"image_url": imageURL}, "Image regenerated")
}
