package dto

import (
	"plotweaver/internal/domain/entity"
)

// ConversationResponse is the conversation history view: structured
// turns plus the rendered recent window.
type ConversationResponse struct {
	Turns              []entity.ConversationTurn `json:"turns"`
	TotalMessages      int                       `json:"total_messages"`
	RecentConversation string                    `json:"recent_conversation"`
}
