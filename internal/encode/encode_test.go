package encode

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestFileEncodesBase64(t *testing.T) {
	raw := "contenido del contrato de arras"
	payload, err := File(strings.NewReader(raw), "application/pdf")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if payload.MediaType != "application/pdf" {
		t.Fatalf("expected media type preserved, got %q", payload.MediaType)
	}
	if want := base64.StdEncoding.EncodeToString([]byte(raw)); payload.Content != want {
		t.Fatalf("expected content %q, got %q", want, payload.Content)
	}
	if strings.Contains(payload.Content, ",") || strings.HasPrefix(payload.Content, "data:") {
		t.Fatalf("content must not carry a data-URI header: %q", payload.Content)
	}
}

func TestFileDecodeRoundTrip(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	payload, err := File(strings.NewReader(string(raw)), "image/png")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := payload.Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Fatalf("round trip mismatch: %v vs %v", decoded, raw)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestFileReadFailure(t *testing.T) {
	payload, err := File(failingReader{}, "application/pdf")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if payload != (Payload{}) {
		t.Fatalf("expected no partial payload, got %+v", payload)
	}
}

func TestPDFTextRejectsGarbage(t *testing.T) {
	if _, err := PDFText([]byte("this is not a pdf")); err == nil {
		t.Fatalf("expected an error for non-PDF bytes")
	}
}
