package model

import "fmt"

// TranscriptSource records where a transcript came from.
type TranscriptSource string

const (
	SourceManual          TranscriptSource = "manual"
	SourceAutoGenerated   TranscriptSource = "auto_generated"
	SourceForeignFallback TranscriptSource = "foreign_fallback"
	SourceAIGenerated     TranscriptSource = "ai_generated"
	SourceNone            TranscriptSource = "none"
)

var sourceLabels = map[TranscriptSource]string{
	SourceManual:          "Manual Captions",
	SourceAutoGenerated:   "Auto-Generated Captions",
	SourceForeignFallback: "Foreign Language Captions",
	SourceAIGenerated:     "AI Generated (Whisper)",
	SourceNone:            "None",
}

func IsKnownSource(source TranscriptSource) bool {
	_, ok := sourceLabels[source]
	return ok
}

// Label returns the human-readable form written to the CSV Transcript Type
// column.
func (s TranscriptSource) Label() string {
	if label, ok := sourceLabels[s]; ok {
		return label
	}
	return string(s)
}

func ParseSource(raw string) (TranscriptSource, error) {
	s := TranscriptSource(raw)
	if !IsKnownSource(s) {
		return "", fmt.Errorf("unknown transcript source %q", raw)
	}
	return s, nil
}
