package payload

import "errors"

// Fatal extraction errors. Everything else in the pipeline degrades to
// null/default values; only these three abort a run.
var (
	// ErrPayloadNotFound means no marker matched after exhausting both
	// document shapes, or the extracted literal failed to parse.
	ErrPayloadNotFound = errors.New("match payload not found in markup")

	// ErrMalformedLiteral means a located literal never balanced its
	// delimiters before the input ended.
	ErrMalformedLiteral = errors.New("malformed embedded literal")
)
