package model

import "errors"

var (
	ErrPrepare            = errors.New("model: unable to prepare statement")
	ErrExecute            = errors.New("model: unable to execute statement")
	ErrQuery              = errors.New("model: unable to run query")
	ErrScan               = errors.New("model: unable to scan row")
	ErrLastInsertID       = errors.New("model: unable to read last insert id")
	ErrInvalidIdentifier  = errors.New("model: invalid table or column name")
	ErrMissingPrimaryKey  = errors.New("model: primary key is not set")
	ErrNotFound           = errors.New("model: record not found")
	ErrDetached           = errors.New("model: instance is not bound to a connection")
	ErrUnsupportedDialect = errors.New("model: unsupported sql dialect")

	// Relation errors.
	ErrParentNotFound     = errors.New("model: child does not have a parent")
	ErrChildNotFound      = errors.New("model: parent does not have a child")
	ErrCannotCreateParent = errors.New("model: child cannot create its parent")
	ErrCannotDeleteParent = errors.New("model: child cannot delete its parent")
)
