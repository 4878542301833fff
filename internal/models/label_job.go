package models

import "time"

type LabelJob struct {
	ID        string            `json:"id"`
	Request   GenerateRequest   `json:"request"`
	BaseURL   string            `json:"base_url"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at,omitempty"`
	Result    *GenerateResponse `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
