package service

import "errors"

// ErrJudgeDisabled is returned when a model review is requested but no LLM
// client is configured.
var ErrJudgeDisabled = errors.New("llm judge is disabled")

// ErrEmptyText is returned when there is no description to augment.
var ErrEmptyText = errors.New("text is empty")
