package analysis

import (
	"io"

	"brea-backend/internal/llm"
)

// InputKind discriminates the Input union.
type InputKind int

const (
	KindEmpty InputKind = iota
	KindText
	KindURL
	KindFile
)

// Input is the tagged union of exactly one analysis source: free text, a
// listing URL, or an uploaded file. The union is structural, so the
// text/file mutual exclusivity invariant cannot be violated procedurally.
type Input struct {
	kind      InputKind
	text      string
	file      io.Reader
	mediaType string
}

// TextInput builds a text or url variant depending on the input's shape.
func TextInput(s string) Input {
	if s == "" {
		return Input{}
	}
	if llm.IsURL(s) {
		return Input{kind: KindURL, text: s}
	}
	return Input{kind: KindText, text: s}
}

// FileInput builds a file variant from an unread file handle and its
// declared media type.
func FileInput(r io.Reader, mediaType string) Input {
	if r == nil {
		return Input{}
	}
	return Input{kind: KindFile, file: r, mediaType: mediaType}
}

// WithFile replaces the input with a file variant, discarding any pending
// text or url.
func (in Input) WithFile(r io.Reader, mediaType string) Input {
	return FileInput(r, mediaType)
}

// WithText replaces the input with a text or url variant, discarding any
// pending file.
func (in Input) WithText(s string) Input {
	return TextInput(s)
}

func (in Input) Kind() InputKind { return in.kind }

// Text returns the free text or URL content for non-file variants.
func (in Input) Text() string { return in.text }

// File returns the unread file handle and media type for file variants.
func (in Input) File() (io.Reader, string) { return in.file, in.mediaType }

// Empty reports whether no variant is populated.
func (in Input) Empty() bool { return in.kind == KindEmpty }
