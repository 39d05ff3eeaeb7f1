package gemini

import "errors"

// ErrEmptyPrompt is returned when a call is made with nothing to send.
var ErrEmptyPrompt = errors.New("prompt cannot be empty")
