package input

import "errors"

var (
	ErrInvalidForm = errors.New("input: failed to parse form")
	ErrInvalidJSON = errors.New("input: request body is not a JSON object")
)
