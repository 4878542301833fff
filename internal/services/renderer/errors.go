package renderer

import "errors"

// RenderError is the structured failure carried back to callers in a
// RenderResult instead of a Go error.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeAssetNotFound = "ASSET_NOT_FOUND"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeSaveFailed    = "SAVE_FAILED"
	ErrCodeUnknown       = "UNKNOWN"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode extracts the code of a RenderError anywhere in err's chain.
func ErrorCode(err error) string {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Code
	}
	return ErrCodeUnknown
}
