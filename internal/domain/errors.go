package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("invalid donation amount")
	ErrUnknownPreset = errors.New("unknown preset amount")
	ErrIDExhausted   = errors.New("could not allocate unique donation id")
)
