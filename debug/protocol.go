package debug

import (
	"encoding/json"
	"fmt"
)

// Error codes used in responses.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

// Method names.
const (
	MethodStats      = "scene.stats"
	MethodQuads      = "scene.quads"
	MethodDrawQuad   = "debug.draw_quad"
	MethodRemove     = "debug.remove"
	MethodClear      = "debug.clear"
	MethodList       = "debug.list"
	MethodScreenshot = "screenshot"

	// MethodScreenshotAlias is accepted for MethodScreenshot.
	MethodScreenshotAlias = "debug.screenshot"
)

// Request is one client message.
type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
	ID     uint64          `json:"id"`
}

// Response answers the request with the same ID. Exactly one of Result and
// Error is set.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
	ID     uint64          `json:"id"`
}

// Error is a failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("debug: %s (code %d)", e.Message, e.Code)
}

func resultResponse(id uint64, v any) Response {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResponse(id, CodeServerError, "encode result: %v", err)
	}
	return Response{Result: data, ID: id}
}

func errorResponse(id uint64, code int, format string, args ...any) Response {
	return Response{Error: &Error{Code: code, Message: fmt.Sprintf(format, args...)}, ID: id}
}

// hasParams reports whether raw carries a value other than null.
func hasParams(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
