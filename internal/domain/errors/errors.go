package errors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrMissingCustomer  = errors.New("missing customer")
	ErrEmptyOrder       = errors.New("empty order")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrInvalidDocDate   = errors.New("invalid document date")
)

// IsValidation reports whether err blocks submission before anything is sent.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingCustomer) || errors.Is(err, ErrEmptyOrder)
}

// RemoteError is a failure reported by the back office in answer to a request.
type RemoteError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return "back office error: " + e.Message
	}
	return "back office error: " + e.Status
}
