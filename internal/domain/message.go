// Package domain contains core domain types for the interview coach.
package domain

import (
	"time"
)

// Message roles. These match the roles the generation backend expects.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	MessageID int64     `json:"messageId"`
}
