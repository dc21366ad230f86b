package daycontext

import "errors"

// ErrInvalidDate indicates a malformed calendar day.
var ErrInvalidDate = errors.New("invalid calendar day")
