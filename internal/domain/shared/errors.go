package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrNotInitialized   = NewDomainError("NOT_INITIALIZED", "Interface has not been initialized")
	ErrInvalidFeed      = NewDomainError("INVALID_FEED", "Feed document could not be processed")
	ErrInvalidSelector  = NewDomainError("INVALID_SELECTOR", "Mapping selector is malformed")
	ErrUnknownAttribute = NewDomainError("UNKNOWN_ATTRIBUTE", "Destination attribute is not declared in the schema")
)
