package augment

import "errors"

var (
	// ErrUnknownTechnique indicates a technique name that is not supported.
	ErrUnknownTechnique = errors.New("unknown augmentation technique")

	// ErrParaphraseDisabled is returned when paraphrasing is requested but
	// no model client is configured.
	ErrParaphraseDisabled = errors.New("paraphrasing needs the llm to be enabled")
)
