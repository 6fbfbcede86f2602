// Package entity defines the domain entities.
package entity

// Role is the conversation role enum.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
