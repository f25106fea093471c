package config

import "errors"

var (
	ErrRead    = errors.New("config: failed to read file")
	ErrParse   = errors.New("config: failed to parse file")
	ErrInvalid = errors.New("config: invalid configuration")
)
