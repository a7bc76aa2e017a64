package registry

import "errors"

var (
	ErrMissingFont  = errors.New("registry: unknown font key")
	ErrEmptyFamily  = errors.New("registry: empty family")
)
