package handler

import (
	"github.com/gin-gonic/gin"

	"plotweaver/internal/application/plot"
	"plotweaver/internal/interfaces/http/dto"
)

// ConversationHandler serves the conversation history endpoints.
type ConversationHandler struct {
	svc *plot.Service
}

func NewConversationHandler(svc *plot.Service) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// Get returns the conversation history with the rendered recent window.
// @Summary Conversation history
// @Tags Memory
// @Produce json
// @Success 200 {object} dto.Response[dto.ConversationResponse]
// @Router /memory/conversation [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	snap, err := h.svc.Conversation(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ConversationResponse{
		Turns:              snap.Turns,
		TotalMessages:      snap.TotalMessages,
		RecentConversation: snap.RecentConversation,
	})
}

// Clear wipes the conversation history.
// @Summary Clear conversation history
// @Tags Memory
// @Produce json
// @Success 200 {object} dto.Response[dto.MessageResponse]
// @Router /memory/conversation [delete]
func (h *ConversationHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.svc.ClearConversation(ctx); err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.MessageResponse{Message: "会話履歴がクリアされました"})
}
