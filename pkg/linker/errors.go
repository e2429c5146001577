package linker

import "github.com/pkg/errors"

var (
	ErrDuplicateLabel    = errors.New("duplicate label")
	ErrUndefinedLabel    = errors.New("undefined label")
	ErrMissingEntryPoint = errors.New("missing entry point")
	ErrPassOrder         = errors.New("linker pass out of order")
	ErrTokenReused       = errors.New("token linked more than once")
	ErrAddressOverflow   = errors.New("address space overflow")
)
