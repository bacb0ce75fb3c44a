package models

// SessionStatus represents the status of a route parse session.
type SessionStatus string

const (
	SessionStatusPending  SessionStatus = "pending"
	SessionStatusParsing  SessionStatus = "parsing"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusError    SessionStatus = "error"
)

// ParseSession represents one parse of an uploaded route document.
type ParseSession struct {
	ID               string         `json:"id"`
	FileID           string         `json:"fileId"`
	Status           SessionStatus  `json:"status"`
	Progress         float64        `json:"progress"` // 0-100
	StepCount        int            `json:"stepCount,omitempty"`
	ComponentCount   int            `json:"componentCount,omitempty"`
	DisplayScale     int            `json:"displayScale,omitempty"`
	ProcessingTimeMs int64          `json:"processingTimeMs,omitempty"`
	Warnings         []ParseWarning `json:"warnings,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// NewParseSession creates a new ParseSession in pending status.
func NewParseSession(id, fileID string) *ParseSession {
	return &ParseSession{
		ID:       id,
		FileID:   fileID,
		Status:   SessionStatusPending,
		Progress: 0,
		Warnings: make([]ParseWarning, 0),
	}
}
