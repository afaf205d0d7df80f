package extractor

import "io"

// TextExtractor handles plain text files verbatim.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) (*Extraction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Extraction{
		FileName: filename,
		FileType: "TEXT",
		Text:     string(data),
	}, nil
}
