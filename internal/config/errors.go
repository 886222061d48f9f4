package config

import (
	"errors"

	"github.com/dshills/orderly/internal/config/loader"
)

// Errors returned by dataset loading.
var (
	// ErrFileNotFound indicates the dataset file doesn't exist.
	ErrFileNotFound = errors.New("dataset file not found")

	// ErrTypeMismatch indicates a setting or entry field has the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMissingKey indicates an entry without a key.
	ErrMissingKey = errors.New("entry has no key")
)

// ParseError represents an error while parsing a dataset file.
type ParseError = loader.ParseError
