package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"whispertube/internal/model"
	"whispertube/internal/sessionfs"
)

// csvHeader is the stable column order of the session CSV. Existing sheets
// and downstream scripts depend on it.
var csvHeader = []string{
	"Title",
	"Video URL",
	"View Count",
	"Duration (seconds)",
	"Uploader",
	"Upload Date",
	"Description",
	"Transcript",
	"Transcript Type",
	"Character Count",
	"Processing Date",
}

const processedAtLayout = "2006-01-02 15:04:05"

// ResultWriter appends transcript results to the session CSV as they are
// produced, one flushed row per video, so an interrupted run keeps every row
// written so far.
type ResultWriter struct {
	file *os.File
	csv  *csv.Writer
}

// NewResultWriter opens (or creates) the session CSV for appending. The
// header is written only when the file is empty, so reopening an existing
// session CSV never duplicates it.
func NewResultWriter(path string) (*ResultWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open results csv %s: %w", path, err)
	}
	w := &ResultWriter{file: file, csv: csv.NewWriter(file)}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat results csv %s: %w", path, err)
	}
	if info.Size() == 0 {
		if err := w.writeRow(csvHeader); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("write csv header: %w", err)
		}
	}
	return w, nil
}

// Append writes one result row and flushes it to disk immediately.
func (w *ResultWriter) Append(res model.TranscriptResult) error {
	transcriptCell := res.Transcript
	if !res.Succeeded() {
		// Failures carry their explanation in the transcript column,
		// bracketed so a reader cannot mistake it for spoken text.
		transcriptCell = "[" + res.Err + "]"
	}
	row := []string{
		res.Title,
		res.URL,
		strconv.FormatInt(res.ViewCount, 10),
		strconv.Itoa(res.DurationSeconds),
		res.Uploader,
		res.UploadDate,
		res.Description,
		transcriptCell,
		res.Source.Label(),
		strconv.Itoa(res.CharCount),
		res.ProcessedAt.Format(processedAtLayout),
	}
	if err := w.writeRow(row); err != nil {
		return fmt.Errorf("append result for %s: %w", res.VideoID, err)
	}
	return nil
}

func (w *ResultWriter) writeRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *ResultWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// WriteArtifacts persists the per-video files: the transcript text on
// success, and a metadata summary always.
func WriteArtifacts(videoDir string, res model.TranscriptResult) error {
	if res.Succeeded() {
		path := filepath.Join(videoDir, res.VideoID+"_transcript.txt")
		if err := sessionfs.WriteBytes(path, []byte(res.Transcript+"\n")); err != nil {
			return fmt.Errorf("write transcript artifact: %w", err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", res.Title)
	fmt.Fprintf(&b, "URL: %s\n", res.URL)
	fmt.Fprintf(&b, "Uploader: %s\n", res.Uploader)
	fmt.Fprintf(&b, "Upload Date: %s\n", res.UploadDate)
	fmt.Fprintf(&b, "View Count: %d\n", res.ViewCount)
	fmt.Fprintf(&b, "Duration (seconds): %d\n", res.DurationSeconds)
	fmt.Fprintf(&b, "Transcript Type: %s\n", res.Source.Label())
	fmt.Fprintf(&b, "Character Count: %d\n", res.CharCount)
	fmt.Fprintf(&b, "Processing Date: %s\n", res.ProcessedAt.Format(processedAtLayout))
	if res.Err != "" {
		fmt.Fprintf(&b, "Error: %s\n", res.Err)
	}
	if res.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", res.Description)
	}

	path := filepath.Join(videoDir, res.VideoID+"_metadata.txt")
	if err := sessionfs.WriteBytes(path, []byte(b.String())); err != nil {
		return fmt.Errorf("write metadata artifact: %w", err)
	}
	return nil
}

// timeIn keeps ProcessedAt comparable across rows within a run.
func timeIn(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
