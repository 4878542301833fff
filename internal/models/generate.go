package models

type GenerateRequest struct {
	NameTyped string `json:"nameTyped"`
	OrderID   string `json:"orderId"`
}

type LabelOutcome struct {
	Type      string `json:"type"`
	PDFURL    string `json:"pdf_url,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
	Error     string `json:"error,omitempty"`
	Status    string `json:"status"`
}

type GenerateResponse struct {
	OrderID string         `json:"orderId"`
	Results []LabelOutcome `json:"results"`
	Success bool           `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)
