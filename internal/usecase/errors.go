package usecase

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeLeadNotFound = "LEAD_NOT_FOUND"
	CodeStorage      = "STORAGE_ERROR"
)

func newValidationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func newNotFoundError() *DomainError {
	return &DomainError{Code: CodeLeadNotFound, Message: "Lead not found"}
}

func newStorageError(err error) *DomainError {
	return &DomainError{Code: CodeStorage, Message: err.Error()}
}
