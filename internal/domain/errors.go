package domain

import "errors"

var (
	ErrPathNotFound             = errors.New("path not found")
	ErrUnreadableFile           = errors.New("unreadable file")
	ErrSummarizationUnavailable = errors.New("summarization unavailable")
	ErrExtractionUnavailable    = errors.New("entity extraction unavailable")
	ErrToneUnavailable          = errors.New("tone analysis unavailable")
	ErrInvalidLengthBounds      = errors.New("invalid length bounds")
)
