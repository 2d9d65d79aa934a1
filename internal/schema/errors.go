package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes carried by ToolError.
const (
	CodeUpstreamFailure = "upstream_failure"
	CodeInvalidParams   = "invalid_params"
	CodeEnvValidation   = "env_validation"
)

// ToolError is the structured, user-visible error surfaced by tool operations
// and configuration checks: a machine-readable code plus a human message.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func NewToolError(code, message string, err error) *ToolError {
	return &ToolError{Code: code, Message: message, Err: err}
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ToolError) Unwrap() error { return e.Err }

// JSON renders the error as {"code":..., "message":...}.
func (e *ToolError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// AsToolError converts any error into a ToolError. Errors that are not
// already ToolErrors get code "internal".
func AsToolError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return &ToolError{Code: "internal", Message: err.Error(), Err: err}
}
