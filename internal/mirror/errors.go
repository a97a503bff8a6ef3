package mirror

import "errors"

// Mirror errors
var (
	ErrInvalidProvider      = errors.New("invalid or unsupported mirror provider")
	ErrMissingEndpoint      = errors.New("mirror endpoint is required")
	ErrMissingBucket        = errors.New("mirror bucket name is required")
	ErrMissingAccessKey     = errors.New("mirror access key is required")
	ErrMissingSecretKey     = errors.New("mirror secret key is required")
	ErrMissingRegion        = errors.New("mirror region is required for this provider")
	ErrBucketNotFound       = errors.New("mirror bucket not found")
	ErrProviderNotSupported = errors.New("mirror provider not supported")
	ErrDisabled             = errors.New("mirror is disabled")
	ErrQueueFull            = errors.New("mirror queue is full")
)

// Error wraps a provider failure with its context.
type Error struct {
	Provider  string
	Operation string
	Key       string
	Err       error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return "mirror " + e.Provider + " " + e.Operation + " failed for key '" + e.Key + "': " + e.Err.Error()
	}
	return "mirror " + e.Provider + " " + e.Operation + " failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error with context.
func NewError(provider, operation, key string, err error) *Error {
	return &Error{
		Provider:  provider,
		Operation: operation,
		Key:       key,
		Err:       err,
	}
}
