package server

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	maxFileSize = 5 * 1024 * 1024
	minFileSize = 100
)

var pdfMagic = []byte("%PDF")

// validatePDF checks an uploaded document before it reaches the pipeline:
// size limit, extension, content magic bytes, and a minimum-size corruption
// check. The returned error message is safe to surface to the caller.
func validatePDF(data []byte, filename string) error {
	if len(data) > maxFileSize {
		return fmt.Errorf("file size exceeds 5MB limit")
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return fmt.Errorf("file type not supported. Allowed: .pdf")
	}
	if len(data) < minFileSize {
		return fmt.Errorf("file appears to be corrupted or empty")
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return fmt.Errorf("invalid file format. Expected PDF magic bytes")
	}
	return nil
}
