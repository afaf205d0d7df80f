// Package extractor converts binary résumé files into plain text. It is a
// collaborator of the section engine, not part of it: segmentation consumes
// whatever text extraction produced, including partial text from a damaged
// file. Layout information (columns, fonts, tables) is deliberately dropped.
package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extraction is the result of converting one file to text.
type Extraction struct {
	FileName string
	FileType string // "PDF", "DOCX", "MARKDOWN" or "TEXT"
	Text     string
	// Warnings records pages or paragraphs that could not be read. Partial
	// extraction is advisory, never fatal: segmentation proceeds on
	// whatever text came out.
	Warnings []string
}

// Extractor converts raw document bytes into plain text.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Extraction, error)
}

// UnsupportedFormatError is returned when a file extension is not
// recognized. Callers must fail fast instead of segmenting a null document.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file extension: %s", e.Ext)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
