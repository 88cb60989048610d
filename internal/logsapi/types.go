package logsapi

import "fmt"

// Exception is one parsed stack-trace occurrence returned by
// /logs/exceptions-date.
type Exception struct {
	ID               int64  `json:"id"`
	InstanceID       string `json:"instanceId"`
	LineNo           int    `json:"lineNo"`
	PreLines         string `json:"preLines"`
	ExceptionMessage string `json:"exceptionMessage"`
	StackTrace       string `json:"stackTrace"`
}

// HasPreLines reports whether any context lines were captured. Whitespace
// counts: it is part of the captured text.
func (e Exception) HasPreLines() bool {
	return e.PreLines != ""
}

// HasStackTrace reports whether a stack trace was captured.
func (e Exception) HasStackTrace() bool {
	return e.StackTrace != ""
}

// extractRequest is the POST /logs/extract body.
type extractRequest struct {
	InstanceID string `json:"instanceId"`
}

// ExtractResult mirrors the /logs/extract response.
type ExtractResult struct {
	Message string `json:"message"`
}

// StatusError reports a non-success HTTP status from the log service.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}
