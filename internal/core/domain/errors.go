package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrBookNotFound = errors.New("book not found")
var ErrAuthorNotFound = errors.New("author not found")
var ErrInvalidID = errors.New("malformed record id")

// ValidationError reports a rejected record field. Message is safe to show
// to the user on the redisplayed form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
