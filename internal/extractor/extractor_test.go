package extractor

import (
	"errors"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantType string
	}{
		{"resume.pdf", "*extractor.PDFExtractor"},
		{"Resume.PDF", "*extractor.PDFExtractor"},
		{"resume.docx", "*extractor.DOCXExtractor"},
		{"resume.md", "*extractor.MarkdownExtractor"},
		{"resume.markdown", "*extractor.MarkdownExtractor"},
		{"resume.txt", "*extractor.TextExtractor"},
	}
	for _, tt := range tests {
		e, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("ForFile(%q): %v", tt.filename, err)
			continue
		}
		if got := typeName(e); got != tt.wantType {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.wantType)
		}
	}
}

func typeName(e Extractor) string {
	switch e.(type) {
	case *PDFExtractor:
		return "*extractor.PDFExtractor"
	case *DOCXExtractor:
		return "*extractor.DOCXExtractor"
	case *MarkdownExtractor:
		return "*extractor.MarkdownExtractor"
	case *TextExtractor:
		return "*extractor.TextExtractor"
	}
	return "unknown"
}

func TestForFile_Unsupported(t *testing.T) {
	for _, name := range []string{"resume.doc", "resume.rtf", "resume", "archive.zip"} {
		_, err := ForFile(name)
		if err == nil {
			t.Errorf("expected error for %q", name)
			continue
		}
		var ufe *UnsupportedFormatError
		if !errors.As(err, &ufe) {
			t.Errorf("expected UnsupportedFormatError for %q, got %T", name, err)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("cv.docx") {
		t.Error("docx should be supported")
	}
	if IsSupportedExtension("cv.doc") {
		t.Error("legacy .doc should not be supported")
	}
}

func TestTextExtractor(t *testing.T) {
	e := &TextExtractor{}
	got, err := e.Extract(strings.NewReader("John Doe\nEDUCATION\n"), "cv.txt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.FileType != "TEXT" {
		t.Errorf("FileType = %q", got.FileType)
	}
	if got.Text != "John Doe\nEDUCATION\n" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.FileName != "cv.txt" {
		t.Errorf("FileName = %q", got.FileName)
	}
}

func TestMarkdownExtractor(t *testing.T) {
	md := "# John Doe\n\n## EDUCATION\n\nBS Computer Science at State University\n\n- Go\n- SQL\n"
	e := &MarkdownExtractor{}
	got, err := e.Extract(strings.NewReader(md), "cv.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.FileType != "MARKDOWN" {
		t.Errorf("FileType = %q", got.FileType)
	}

	lines := strings.Split(got.Text, "\n")
	want := []string{
		"John Doe",
		"EDUCATION",
		"BS Computer Science at State University",
		"Go",
		"SQL",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestMarkdownExtractor_MultilineParagraph(t *testing.T) {
	// A soft-wrapped paragraph spans several source segments; each one must
	// come through.
	md := "## EXPERIENCE\n\nBuilt ETL pipelines\nacross three teams\n"
	e := &MarkdownExtractor{}
	got, err := e.Extract(strings.NewReader(md), "cv.md")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, want := range []string{"EXPERIENCE", "Built ETL pipelines", "across three teams"} {
		if !strings.Contains(got.Text, want) {
			t.Errorf("Text = %q, missing %q", got.Text, want)
		}
	}
}
