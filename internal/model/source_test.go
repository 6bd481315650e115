package model

import (
	"testing"
	"time"
)

func TestParseSourceAcceptsKnownValues(t *testing.T) {
	for _, raw := range []string{"manual", "auto_generated", "foreign_fallback", "ai_generated", "none"} {
		src, err := ParseSource(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if string(src) != raw {
			t.Fatalf("expected %q, got %q", raw, src)
		}
	}
}

func TestParseSourceRejectsUnknownValue(t *testing.T) {
	if _, err := ParseSource("whisper"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestSourceLabels(t *testing.T) {
	if got := SourceManual.Label(); got != "Manual Captions" {
		t.Fatalf("unexpected manual label %q", got)
	}
	if got := SourceNone.Label(); got != "None" {
		t.Fatalf("unexpected none label %q", got)
	}
}

func TestResultInvariantSuccess(t *testing.T) {
	ref := VideoRef{VideoID: "abc123def45", URL: "https://www.youtube.com/watch?v=abc123def45", Title: "listing title"}
	info := VideoInfo{Title: "Full Title", ViewCount: 42}
	res := NewSuccessResult(ref, info, "hello world", SourceManual, time.Now())

	if !res.Succeeded() {
		t.Fatal("expected success result")
	}
	if res.Err != "" {
		t.Fatalf("success result must not carry error, got %q", res.Err)
	}
	if res.CharCount != len("hello world") {
		t.Fatalf("char count mismatch: %d", res.CharCount)
	}
	if res.Title != "Full Title" {
		t.Fatalf("expected metadata title to win, got %q", res.Title)
	}
}

func TestResultInvariantFailure(t *testing.T) {
	ref := VideoRef{VideoID: "abc123def45", Title: "listing title"}
	res := NewFailureResult(ref, VideoInfo{}, "transcripts are disabled for this video", time.Now())

	if res.Succeeded() {
		t.Fatal("failure result reported success")
	}
	if res.Source != SourceNone {
		t.Fatalf("failure result must have source none, got %q", res.Source)
	}
	if res.Transcript != "" {
		t.Fatalf("failure result must not carry transcript text, got %q", res.Transcript)
	}
	if res.CharCount != 0 {
		t.Fatalf("failure result must have char count 0, got %d", res.CharCount)
	}
	if res.Title != "listing title" {
		t.Fatalf("expected ref title fallback, got %q", res.Title)
	}
}

func TestFailureResultDefaultsMessage(t *testing.T) {
	res := NewFailureResult(VideoRef{VideoID: "x"}, VideoInfo{}, "", time.Now())
	if res.Err == "" {
		t.Fatal("failure result must always carry an explanation")
	}
}

func TestKindFilterMatches(t *testing.T) {
	if !FilterLongform.Matches(KindLongform) || FilterLongform.Matches(KindShort) {
		t.Fatal("longform filter mismatch")
	}
	if !FilterShorts.Matches(KindShort) || FilterShorts.Matches(KindLongform) {
		t.Fatal("shorts filter mismatch")
	}
	if !FilterBoth.Matches(KindShort) || !FilterBoth.Matches(KindLongform) {
		t.Fatal("both filter must match everything")
	}
}

func TestSourceCountsAdd(t *testing.T) {
	var c SourceCounts
	c.Add(SourceManual)
	c.Add(SourceAIGenerated)
	c.Add(SourceAIGenerated)
	c.Add(SourceNone)

	if c.Manual != 1 || c.AIGenerated != 2 || c.None != 1 {
		t.Fatalf("unexpected counts: %+v", c)
	}
	if c.Succeeded() != 3 {
		t.Fatalf("expected 3 succeeded, got %d", c.Succeeded())
	}
}
