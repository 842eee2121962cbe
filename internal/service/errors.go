package service

import "errors"

var (
	// ErrValidation covers empty required fields, unknown media types
	// and over-limit video durations. Nothing is written when it fires.
	ErrValidation = errors.New("validation failed")

	// ErrUpload means the media store rejected the payload or was
	// unreachable. No automatic retry; the caller resubmits.
	ErrUpload = errors.New("upload failed")
)
