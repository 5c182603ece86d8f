package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

const MediaTypePDF = "application/pdf"

// Payload is a transport-ready file payload: the file's bytes encoded as
// base64 text (no data-URI header) plus the declared media type.
type Payload struct {
	Content   string
	MediaType string
}

// Decode returns the payload's raw bytes.
func (p Payload) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Content)
}

// EncodingError reports a failed read or encode of an uploaded file.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode file: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// File reads the full contents of r and returns a transport payload.
// A failed read propagates as *EncodingError; no partial payload is returned.
func File(r io.Reader, mediaType string) (Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Payload{}, &EncodingError{Err: err}
	}
	return Payload{
		Content:   base64.StdEncoding.EncodeToString(data),
		MediaType: mediaType,
	}, nil
}

// PDFText extracts plain text from PDF bytes. It is best-effort context
// enrichment for the prompt; callers treat failure as non-fatal.
func PDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
