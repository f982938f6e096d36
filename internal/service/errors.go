package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("application version is not specified")
	ErrObfuscatingCount      = errors.New("failed to obfuscate allocation count")
	ErrEncryptingAmount      = errors.New("failed to encrypt allocation amount")
)
