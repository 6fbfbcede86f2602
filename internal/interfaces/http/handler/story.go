package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/domain/entity"
	"plotweaver/internal/interfaces/http/dto"
	apperrors "plotweaver/pkg/errors"
)

// StoryHandler serves the story structure endpoints.
type StoryHandler struct {
	svc *plot.Service
}

func NewStoryHandler(svc *plot.Service) *StoryHandler {
	return &StoryHandler{svc: svc}
}

// Create registers a new story.
// @Summary Create a story
// @Tags Story
// @Accept json
// @Produce json
// @Param body body dto.StoryRequest true "story"
// @Success 201 {object} dto.Response[dto.StoryMessageResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /stories [post]
func (h *StoryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	st, err := h.svc.CreateStory(ctx, plot.StoryInput{
		Title:        req.Title,
		Genre:        entity.Genre(req.Genre),
		Synopsis:     req.Summary,
		TargetLength: req.TargetWordCount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.StoryMessageResponse{
		Message: fmt.Sprintf("物語「%s」が作成されました", st.Title),
		Story:   st,
	})
}

// List returns every stored story.
// @Summary List stories
// @Tags Story
// @Produce json
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Router /stories [get]
func (h *StoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	stories, err := h.svc.ListStories(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.StoryListResponse{
		Stories:    stories,
		TotalCount: len(stories),
	})
}

// Get returns one story with derived progress figures.
// @Summary Get a story
// @Tags Story
// @Produce json
// @Param id path string true "story id"
// @Success 200 {object} dto.Response[dto.StoryResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id} [get]
func (h *StoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := h.svc.GetStory(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.StoryResponse{
		Story:     st,
		WordCount: st.WordCount(),
		Progress:  st.Progress(),
	})
}

// AddChapter appends a chapter to a story.
// @Summary Add a chapter
// @Tags Story
// @Accept json
// @Produce json
// @Param id path string true "story id"
// @Param body body dto.ChapterRequest true "chapter"
// @Success 201 {object} dto.Response[dto.ChapterMessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/chapters [post]
func (h *StoryHandler) AddChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ch, err := h.svc.AddChapter(ctx, c.Param("id"), plot.ChapterInput{
		Number:      req.Number,
		Title:       req.Title,
		Summary:     req.Summary,
		TargetWords: req.TargetWordCount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ChapterMessageResponse{
		Message: fmt.Sprintf("章「%s」が追加されました", ch.Title),
		Chapter: ch,
	})
}

// UpdateChapterStatus moves a chapter through the writing workflow.
// @Summary Update chapter status
// @Tags Story
// @Accept json
// @Produce json
// @Param id path string true "story id"
// @Param number path int true "chapter number"
// @Param body body dto.ChapterStatusRequest true "new status"
// @Success 200 {object} dto.Response[dto.MessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/chapters/{number}/status [put]
func (h *StoryHandler) UpdateChapterStatus(c *gin.Context) {
	ctx := c.Request.Context()

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		dto.BadRequest(c, "chapter number must be an integer")
		return
	}

	var req dto.ChapterStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	status := entity.ChapterStatus(req.Status)
	if !status.Valid() {
		respondError(c, apperrors.New(apperrors.CodeInvalidParam, "unknown chapter status").WithDetail(req.Status))
		return
	}

	if err := h.svc.UpdateChapterStatus(ctx, c.Param("id"), number, status); err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.MessageResponse{
		Message: fmt.Sprintf("第%d章のステータスが「%s」に更新されました", number, status),
	})
}

// AddScene appends a scene outline to a chapter.
// @Summary Add a scene
// @Tags Story
// @Accept json
// @Produce json
// @Param id path string true "story id"
// @Param number path int true "chapter number"
// @Param body body dto.SceneRequest true "scene outline"
// @Success 201 {object} dto.Response[dto.SceneMessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/chapters/{number}/scenes [post]
func (h *StoryHandler) AddScene(c *gin.Context) {
	ctx := c.Request.Context()

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		dto.BadRequest(c, "chapter number must be an integer")
		return
	}

	var req dto.SceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	scene, err := h.svc.AddScene(ctx, c.Param("id"), number, plot.SceneInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Characters:  req.Characters,
		Purpose:     req.Purpose,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.SceneMessageResponse{
		Message: fmt.Sprintf("シーン「%s」が追加されました", scene.Name),
		Scene:   scene,
	})
}

// UpdateSceneContent stores the written text of a scene.
// @Summary Update scene content
// @Tags Story
// @Accept json
// @Produce json
// @Param id path string true "story id"
// @Param number path int true "chapter number"
// @Param scene path int true "scene number"
// @Param body body dto.SceneContentRequest true "scene text"
// @Success 200 {object} dto.Response[dto.SceneMessageResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/chapters/{number}/scenes/{scene}/content [put]
func (h *StoryHandler) UpdateSceneContent(c *gin.Context) {
	ctx := c.Request.Context()

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		dto.BadRequest(c, "chapter number must be an integer")
		return
	}
	sceneNumber, err := strconv.Atoi(c.Param("scene"))
	if err != nil {
		dto.BadRequest(c, "scene number must be an integer")
		return
	}

	var req dto.SceneContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	scene, err := h.svc.UpdateSceneContent(ctx, c.Param("id"), number, sceneNumber, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.SceneMessageResponse{
		Message: fmt.Sprintf("シーン「%s」の内容が更新されました", scene.Name),
		Scene:   scene,
	})
}

// Suggestions returns writing advice and consistency warnings for a
// story.
// @Summary Writing suggestions
// @Tags Story
// @Produce json
// @Param id path string true "story id"
// @Success 200 {object} dto.Response[dto.SuggestionsResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/suggestions [get]
func (h *StoryHandler) Suggestions(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	res, err := h.svc.Suggestions(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.SuggestionsResponse{
		WritingSuggestions: res.WritingSuggestions,
		ConsistencyIssues:  res.ConsistencyIssues,
		StoryID:            id,
	})
}
