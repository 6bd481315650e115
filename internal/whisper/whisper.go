package whisper

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ModelSize selects the Whisper model checkpoint. Larger models transcribe
// better and slower.
type ModelSize string

const (
	ModelTiny   ModelSize = "tiny"
	ModelBase   ModelSize = "base"
	ModelSmall  ModelSize = "small"
	ModelMedium ModelSize = "medium"
	ModelLarge  ModelSize = "large"
)

func ParseModelSize(raw string) (ModelSize, error) {
	switch ModelSize(strings.ToLower(strings.TrimSpace(raw))) {
	case ModelTiny:
		return ModelTiny, nil
	case ModelBase, "":
		return ModelBase, nil
	case ModelSmall:
		return ModelSmall, nil
	case ModelMedium:
		return ModelMedium, nil
	case ModelLarge:
		return ModelLarge, nil
	default:
		return "", fmt.Errorf("invalid whisper model %q (expected tiny, base, small, medium, or large)", strings.TrimSpace(raw))
	}
}

// ParseDevice validates a compute device selection.
func ParseDevice(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return "auto", nil
	case "cpu":
		return "cpu", nil
	case "cuda":
		return "cuda", nil
	default:
		return "", fmt.Errorf("invalid whisper device %q (expected auto, cpu, or cuda)", strings.TrimSpace(raw))
	}
}

// TranscriptionError reports a failed Whisper run for one audio file.
type TranscriptionError struct {
	AudioPath string
	Err       error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed for %s: %v", filepath.Base(e.AudioPath), e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// Transcriber shells out to the whisper CLI. The zero value uses "whisper"
// from PATH with the base model on auto-selected hardware.
type Transcriber struct {
	// Binary overrides the whisper executable path. Empty means PATH lookup.
	Binary string
	// Model is the checkpoint to load. Empty means base.
	Model ModelSize
	// Device is auto, cpu, or cuda. Auto lets whisper pick.
	Device string
	// Timeout bounds one transcription. Zero disables the bound; large
	// models on CPU can legitimately run for a long time.
	Timeout time.Duration
}

func (t *Transcriber) binary() string {
	if strings.TrimSpace(t.Binary) != "" {
		return t.Binary
	}
	return "whisper"
}

func (t *Transcriber) model() ModelSize {
	if t.Model == "" {
		return ModelBase
	}
	return t.Model
}

// Available reports whether the whisper binary can be found.
func (t *Transcriber) Available() bool {
	_, err := exec.LookPath(t.binary())
	return err == nil
}

// Transcribe runs Whisper over one audio file and returns the plain-text
// transcript. Whisper writes its output next to workDir; the .txt it produces
// is read and removed, leaving artifact management to the caller.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, workDir string) (string, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	args := []string{
		audioPath,
		"--model", string(t.model()),
		"--output_format", "txt",
		"--output_dir", workDir,
	}
	device := strings.ToLower(strings.TrimSpace(t.Device))
	if device != "" && device != "auto" {
		args = append(args, "--device", device)
	}
	if device == "cpu" {
		// fp16 inference is unsupported on CPU and whisper warns loudly.
		args = append(args, "--fp16", "False")
	}

	cmd := exec.CommandContext(ctx, t.binary(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", &TranscriptionError{AudioPath: audioPath, Err: fmt.Errorf("whisper timed out: %w", ctxErr)}
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", &TranscriptionError{AudioPath: audioPath, Err: err}
		}
		return "", &TranscriptionError{AudioPath: audioPath, Err: fmt.Errorf("%w: %s", err, detail)}
	}

	txtPath := outputTextPath(audioPath, workDir)
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", &TranscriptionError{AudioPath: audioPath, Err: fmt.Errorf("read whisper output: %w", err)}
	}
	_ = os.Remove(txtPath)

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", &TranscriptionError{AudioPath: audioPath, Err: fmt.Errorf("whisper produced an empty transcript")}
	}
	return text, nil
}

// outputTextPath is where whisper drops its txt output: the audio basename
// with the extension swapped for .txt, inside the output dir.
func outputTextPath(audioPath, workDir string) string {
	base := filepath.Base(audioPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(workDir, base+".txt")
}
