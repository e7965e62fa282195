package contract

import "errors"

// ErrDuplicateKey is returned by Create when the row's identity already exists.
var ErrDuplicateKey = errors.New("duplicate key")
