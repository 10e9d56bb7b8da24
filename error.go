package ble

import "github.com/pkg/errors"

// Errors shared by the value types of this package and its users.
var (
	ErrInvalidAddress   = errors.New("invalid device address")
	ErrInvalidInterval  = errors.New("interval out of range")
	ErrInvalidParameter = errors.New("invalid parameter")
)
