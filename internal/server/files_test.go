package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakePDF(size int) []byte {
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), size)...)
	return data
}

func TestValidatePDFAccepts(t *testing.T) {
	assert.NoError(t, validatePDF(fakePDF(512), "report.pdf"))
	assert.NoError(t, validatePDF(fakePDF(512), "REPORT.PDF"))
}

func TestValidatePDFRejectsOversize(t *testing.T) {
	err := validatePDF(fakePDF(maxFileSize), "report.pdf")
	assert.ErrorContains(t, err, "5MB")
}

func TestValidatePDFRejectsWrongExtension(t *testing.T) {
	err := validatePDF(fakePDF(512), "report.docx")
	assert.ErrorContains(t, err, "not supported")
}

func TestValidatePDFRejectsWrongMagic(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 512)
	err := validatePDF(data, "report.pdf")
	assert.ErrorContains(t, err, "magic bytes")
}

func TestValidatePDFRejectsTinyFile(t *testing.T) {
	err := validatePDF([]byte("%PDF"), "report.pdf")
	assert.ErrorContains(t, err, "corrupted")
}
