package types

import "errors"

// Source file errors.
var (
	ErrNoSourceFiles = errors.New("no JSON files found")
	ErrMalformedJSON = errors.New("malformed JSON")
	ErrNotArray      = errors.New("top-level JSON value must be an array")
)

// Question conversion errors.
var (
	ErrNotObject     = errors.New("question must be a JSON object")
	ErrInvalidField  = errors.New("invalid question field")
	ErrInvalidAnswer = errors.New("answer must be a string, scalar, or list of strings")
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)
