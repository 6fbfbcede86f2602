package handler

import (
	"github.com/gin-gonic/gin"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/domain/entity"
	"plotweaver/internal/interfaces/http/dto"
)

// GenerateHandler serves the plot generation endpoints.
type GenerateHandler struct {
	svc *plot.Service
}

func NewGenerateHandler(svc *plot.Service) *GenerateHandler {
	return &GenerateHandler{svc: svc}
}

// Generate runs a single plot generation.
// @Summary Generate a plot
// @Description Render the genre template with character memory and run one completion
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "generation request"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.GeneratePlot(ctx, plot.GenerateInput{
		Prompt:         req.Prompt,
		Genre:          entity.Genre(req.Genre),
		CharacterNames: req.CharacterNames,
		MaxTokens:      req.MaxTokens,
		Temperature:    req.Temperature,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.GenerateResponse{
		Response:            res.Text,
		Genre:               string(res.Genre),
		CharacterMemoryUsed: res.MemoryUsed,
		ModelUsed:           true,
		ModelPath:           res.ModelPath,
	})
}

// GenerateMultiple samples several variants of the same plot.
// @Summary Generate plot variations
// @Description Sample up to five completions with a rising temperature ladder
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.MultipleGenerateRequest true "variation request"
// @Success 200 {object} dto.Response[dto.MultipleGenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /generate/multiple [post]
func (h *GenerateHandler) GenerateMultiple(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MultipleGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.GenerateVariants(ctx, plot.VariantsInput{
		Prompt:         req.Prompt,
		Genre:          entity.Genre(req.Genre),
		CharacterNames: req.CharacterNames,
		Count:          req.NumVariations,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	variations := make([]dto.Variation, len(res.Variants))
	for i, v := range res.Variants {
		variations[i] = dto.Variation{
			Variation:   v.Variation,
			Response:    v.Response,
			Temperature: v.Temperature,
		}
	}

	dto.Success(c, dto.MultipleGenerateResponse{
		Variations:      variations,
		Genre:           string(res.Genre),
		TotalVariations: len(variations),
		ModelUsed:       true,
	})
}

// GenerateAdvanced runs a context-integrated generation.
// @Summary Generate with world and story context
// @Description Assemble world, story, chapter and character context around the instruction
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.AdvancedGenerateRequest true "advanced generation request"
// @Success 200 {object} dto.Response[dto.AdvancedGenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /generate/advanced [post]
func (h *GenerateHandler) GenerateAdvanced(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdvancedGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.GenerateAdvanced(ctx, plot.AdvancedInput{
		Prompt:             req.Prompt,
		StoryID:            req.StoryID,
		ChapterNumber:      req.ChapterNumber,
		SceneIndex:         req.SceneIndex,
		UseWorldContext:    boolOr(req.UseWorldContext, true),
		UseCharacterMemory: boolOr(req.UseCharacterMemory, true),
		MaxTokens:          req.MaxTokens,
		Temperature:        req.Temperature,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.AdvancedGenerateResponse{
		Response: res.Text,
		ContextUsed: dto.ContextUsed{
			World:           res.ContextUsed.World,
			Story:           res.ContextUsed.Story,
			Chapter:         res.ContextUsed.Chapter,
			CharacterMemory: res.ContextUsed.CharacterMemory,
		},
		ModelUsed: true,
		ModelPath: res.ModelPath,
	})
}

// boolOr resolves an optional flag against its default.
func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
