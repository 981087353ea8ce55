package auth

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
)

// IdentityError carries per-field signup collision messages: a taken
// username and a taken email are independently checked rules, so both may
// be present at once.
type IdentityError struct {
	Fields map[string]string
}

func (e *IdentityError) Error() string {
	for _, msg := range e.Fields {
		return msg
	}
	return "identity collision"
}
