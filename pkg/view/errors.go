package view

import "errors"

var (
	ErrNotFound = errors.New("view: view file not found")
	ErrParse    = errors.New("view: failed to parse view")
	ErrExecute  = errors.New("view: failed to execute view")
)
