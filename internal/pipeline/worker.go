package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/resumatch/resumatch/internal/extractor"
	"github.com/resumatch/resumatch/internal/section"
	"github.com/resumatch/resumatch/internal/tokenize"
)

// Worker processes résumé jobs: extract text, segment into sections,
// tokenize. A failure in one job never affects the others in the queue.
type Worker struct {
	segmenter   *section.Segmenter
	pdfFallback bool
	log         *slog.Logger
}

func NewWorker(segmenter *section.Segmenter, pdfFallback bool, log *slog.Logger) *Worker {
	return &Worker{
		segmenter:   segmenter,
		pdfFallback: pdfFallback,
		log:         log,
	}
}

// Process runs a job through extraction and segmentation, updating its
// status as it goes.
func (w *Worker) Process(ctx context.Context, job *Job) {
	job.SetStatus(StatusExtracting, "extracting text")

	// An unrecognized extension fails this job alone; the queue keeps
	// moving.
	ext, err := extractor.ForFile(job.Filename)
	if err != nil {
		job.Fail("extracting text", err.Error())
		return
	}
	if pe, ok := ext.(*extractor.PDFExtractor); ok {
		pe.FallbackPdftotext = w.pdfFallback
	}

	extraction, err := ext.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		w.log.Error("extraction failed", "job_id", job.ID, "filename", job.Filename, "error", err)
		job.Fail("extracting text", err.Error())
		return
	}
	for _, warning := range extraction.Warnings {
		job.AddWarning(warning)
	}
	if strings.TrimSpace(extraction.Text) == "" {
		job.Fail("extracting text", "no text content extracted from file")
		return
	}

	job.SetStatus(StatusSegmenting, "segmenting sections")

	sections, err := w.segmenter.Segment(ctx, extraction.Text)
	if err != nil {
		w.log.Error("segmentation failed", "job_id", job.ID, "error", err)
		job.Fail("segmenting sections", err.Error())
		return
	}

	job.SetResult(Result{
		FileType: extraction.FileType,
		Sections: sections,
		Tokens:   tokenize.Words(extraction.Text),
	})

	status := StatusCompleted
	if len(extraction.Warnings) > 0 {
		status = StatusPartial
	}
	job.SetStatus(status, "done")
	w.log.Info("job processed", "job_id", job.ID, "filename", job.Filename, "status", status)
}
