package model

import "errors"

var (
	ErrDeviceNotFound          = errors.New("device not found")
	ErrCannotUpdateInUseDevice = errors.New("name or brand cannot be changed while device is in use")
	ErrCannotDeleteInUseDevice = errors.New("in use device cannot be removed")
	ErrInvalidDeviceID         = errors.New("invalid device ID")
	ErrDatabaseQuery           = errors.New("database query error")
)
