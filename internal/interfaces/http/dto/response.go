package dto

import "time"

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// SyncRequest is the body of a sync trigger
type SyncRequest struct {
	File     string `json:"file" binding:"required"`
	Username string `json:"username"`
}

// SyncFileResponse is one candidate transfer file of the operator view
type SyncFileResponse struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Size     string     `json:"size"`
	ModTime  time.Time  `json:"mod_time"`
	Synced   bool       `json:"synced"`
	SyncedAt *time.Time `json:"synced_at,omitempty"`
	SyncedBy string     `json:"synced_by,omitempty"`
	Status   int        `json:"status"`
}

// SyncResultResponse describes a finished run
type SyncResultResponse struct {
	Partial  bool     `json:"partial"`
	Messages []string `json:"messages"`
}

// HistoryEntryResponse is one sync log entry
type HistoryEntryResponse struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Tstamp   time.Time `json:"tstamp"`
	Username string    `json:"username"`
	Text     string    `json:"text"`
	Status   int       `json:"status"`
}
