package engine

// Error codes reported in protocol envelopes.
const (
	CodeBadInput     = "bad_input"
	CodeInvalidStage = "invalid_stage"
	CodeInternal     = "internal_error"
)

// ErrorBody is the inner error object of a protocol envelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorEnvelope is the protocol error frame emitted on any failure.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// NewError builds an error envelope.
func NewError(code, message string, details map[string]any) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorBody{Code: code, Message: message, Details: details}}
}
