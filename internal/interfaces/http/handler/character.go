package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/interfaces/http/dto"
	apperrors "plotweaver/pkg/errors"
)

// CharacterHandler serves the character memory endpoints.
type CharacterHandler struct {
	svc *plot.Service
}

func NewCharacterHandler(svc *plot.Service) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// List returns all characters in insertion order.
// @Summary List characters
// @Tags Characters
// @Produce json
// @Success 200 {object} dto.Response[dto.CharacterListResponse]
// @Router /characters [get]
func (h *CharacterHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	chars, err := h.svc.ListCharacters(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.CharacterListResponse{
		Characters: chars,
		TotalCount: len(chars),
	})
}

// Add stores a new character.
// @Summary Add a character
// @Tags Characters
// @Accept json
// @Produce json
// @Param body body dto.CharacterRequest true "character"
// @Success 201 {object} dto.Response[dto.CharacterMessageResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /characters [post]
func (h *CharacterHandler) Add(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ch, err := h.svc.AddCharacter(ctx, plot.CharacterInput{
		Name:          req.Name,
		Description:   req.Description,
		Traits:        req.Traits,
		Background:    req.Background,
		Relationships: req.Relationships,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.CharacterMessageResponse{
		Message:   fmt.Sprintf("キャラクター '%s' が追加されました", ch.Name),
		Character: ch,
	})
}

// Get returns one character by name.
// @Summary Get a character
// @Tags Characters
// @Produce json
// @Param name path string true "character name"
// @Success 200 {object} dto.Response[dto.CharacterResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /characters/{name} [get]
func (h *CharacterHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	ch, err := h.svc.GetCharacter(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.CharacterResponse{Name: ch.Name, Character: ch})
}

// Update merges the provided fields into a stored character.
// @Summary Update a character
// @Tags Characters
// @Accept json
// @Produce json
// @Param name path string true "character name"
// @Param body body dto.CharacterUpdateRequest true "fields to update"
// @Success 200 {object} dto.Response[dto.CharacterMessageResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /characters/{name} [put]
func (h *CharacterHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	var req dto.CharacterUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ch, err := h.svc.UpdateCharacter(ctx, name, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.CharacterMessageResponse{
		Message:   fmt.Sprintf("キャラクター '%s' が更新されました", ch.Name),
		Character: ch,
	})
}

// Delete removes a character.
// @Summary Delete a character
// @Tags Characters
// @Produce json
// @Param name path string true "character name"
// @Success 200 {object} dto.Response[dto.MessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /characters/{name} [delete]
func (h *CharacterHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	if err := h.svc.DeleteCharacter(ctx, name); err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.MessageResponse{
		Message: fmt.Sprintf("キャラクター '%s' が削除されました", name),
	})
}

// Search finds characters by trait.
// @Summary Search characters by trait
// @Tags Characters
// @Produce json
// @Param trait query string true "trait to match"
// @Success 200 {object} dto.Response[dto.CharacterListResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /characters/search [get]
func (h *CharacterHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	trait := c.Query("trait")
	if trait == "" {
		respondError(c, apperrors.New(apperrors.CodeInvalidParam, "trait query parameter is required"))
		return
	}

	chars, err := h.svc.SearchCharactersByTrait(ctx, trait)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.CharacterListResponse{
		Characters: chars,
		TotalCount: len(chars),
	})
}

// Statistics returns character store statistics.
// @Summary Character statistics
// @Tags Characters
// @Produce json
// @Success 200 {object} dto.Response[repository.CharacterStatistics]
// @Router /characters/statistics [get]
func (h *CharacterHandler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.svc.CharacterStatistics(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, stats)
}

// AddDevelopment appends a growth note to a character.
// @Summary Record character development
// @Tags Characters
// @Accept json
// @Produce json
// @Param name path string true "character name"
// @Param body body dto.DevelopmentRequest true "development note"
// @Success 200 {object} dto.Response[dto.CharacterMessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /characters/{name}/development [post]
func (h *CharacterHandler) AddDevelopment(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	var req dto.DevelopmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ch, err := h.svc.AddDevelopment(ctx, name, req.Development)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.CharacterMessageResponse{
		Message:   fmt.Sprintf("キャラクター '%s' の成長記録が追加されました", ch.Name),
		Character: ch,
	})
}

// AddAppearance records a story appearance for a character.
// @Summary Record a story appearance
// @Tags Characters
// @Accept json
// @Produce json
// @Param name path string true "character name"
// @Param body body dto.AppearanceRequest true "story title"
// @Success 200 {object} dto.Response[dto.CharacterMessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /characters/{name}/appearances [post]
func (h *CharacterHandler) AddAppearance(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	var req dto.AppearanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ch, err := h.svc.AddAppearance(ctx, name, req.StoryTitle)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.CharacterMessageResponse{
		Message:   fmt.Sprintf("キャラクター '%s' の登場記録が追加されました", ch.Name),
		Character: ch,
	})
}
