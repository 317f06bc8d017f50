package model

import "errors"

var (
	ErrEmptyKey          = errors.New("model: the key is empty")
	ErrKeyTooLong        = errors.New("model: key is too long")
	ErrValueTooLong      = errors.New("model: value is too long")
	ErrMissingCollMeta   = errors.New("model: collection item has no metadata")
	ErrFieldTooLong      = errors.New("model: map field is too long")
	ErrEflagTooLong      = errors.New("model: element flag is too long")
	ErrInvalidBkey       = errors.New("model: invalid b-tree key")
	ErrInvalidUpdateType = errors.New("model: update type does not match the log type")
)
