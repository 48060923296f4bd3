package model

// Standard error codes surfaced to the presenter.
const (
	ErrCodeMissingFields     = "MISSING_FIELDS"
	ErrCodeNotANumber        = "NOT_A_NUMBER"
	ErrCodeNegative          = "NEGATIVE"
	ErrCodeFetchFailure      = "FETCH_FAILURE"
	ErrCodeUploadFailure     = "UPLOAD_FAILURE"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeRefreshSuperseded = "REFRESH_SUPERSEDED"
)

// DomainError is an error with a stable code and a user-facing message.
type DomainError struct {
	Code    string
	Message string
}

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

// Validation errors, checked in this order.
var (
	ErrMissingFields = NewDomainError(ErrCodeMissingFields, "Please fill in all fields and upload an image")
	ErrNotANumber    = NewDomainError(ErrCodeNotANumber, "Price, rate, and count must be numbers")
	ErrNegative      = NewDomainError(ErrCodeNegative, "Price, rate, and count must be non-negative")
)

// Collaborator and lookup errors.
var (
	ErrFetchFailure      = NewDomainError(ErrCodeFetchFailure, "Failed to fetch products. Please try again later.")
	ErrUploadFailure     = NewDomainError(ErrCodeUploadFailure, "Failed to upload image")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "No product found with the specified ID")
	ErrRefreshSuperseded = NewDomainError(ErrCodeRefreshSuperseded, "refresh superseded by a newer request")
)
