package domain

import "errors"

// Format errors returned (wrapped) by the parsers.
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidNumber   = errors.New("value is not an integer")
)

// Statistical precondition errors returned (wrapped) by ComputeStatistics.
var (
	ErrEmptyDataset = errors.New("dataset is empty")
	ErrTooFewValues = errors.New("standard deviation requires at least two values")
	ErrNoUniqueMode = errors.New("no unique mode")
)
