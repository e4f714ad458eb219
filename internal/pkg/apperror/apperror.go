package apperror

// AppError is a custom error type carrying an HTTP status code and a stable
// machine-readable code so callers can branch without string matching.
type AppError struct {
	Status  int    // HTTP Status Code (e.g., 400, 404)
	Code    string // Machine-readable error code (e.g., "scheduling_conflict")
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status, code and message.
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage returns a copy of base with a more specific message.
// The copy wraps base, so errors.Is(copy, base) still holds.
func WithMessage(base *AppError, message string) *AppError {
	return &AppError{
		Status:  base.Status,
		Code:    base.Code,
		Message: message,
		Err:     base,
	}
}
