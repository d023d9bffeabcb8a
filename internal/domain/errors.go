package domain

import "errors"

var (
	ErrAgentTimeout   = errors.New("agent call timed out")
	ErrEmptyMessage   = errors.New("empty message body")
	ErrMissingSender  = errors.New("missing sender identifier")
	ErrNoChoices      = errors.New("no choices in model response")
	ErrOrderNotStored = errors.New("order was not stored")
)
