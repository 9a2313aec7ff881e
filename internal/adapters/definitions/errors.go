package definitions

import "errors"

// Sentinel error kinds for this package.
var (
	ErrReadFile      = errors.New("read definitions file")
	ErrDecode        = errors.New("decode definitions")
	ErrInvalidPlayer = errors.New("invalid player record")
)
