package transcript

import "testing"

func TestPlainTextStripsVTTStructure(t *testing.T) {
	raw := `WEBVTT
Kind: captions
Language: en

NOTE
this block is metadata

1
00:00:00.000 --> 00:00:02.000
Hello <c.colorCCCCCC>there</c>

2
00:00:02.000 --> 00:00:04.000
General Kenobi
`
	got := PlainText(raw)
	want := "Hello there General Kenobi"
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextCollapsesRepeatedLines(t *testing.T) {
	raw := `WEBVTT

00:00:00.000 --> 00:00:01.500
so today we are

00:00:01.500 --> 00:00:03.000
so today we are

00:00:03.000 --> 00:00:04.500
going to build
`
	got := PlainText(raw)
	want := "so today we are going to build"
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextEmptyInput(t *testing.T) {
	if got := PlainText("WEBVTT\n\n"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestPlainTextStripsInlineTimestamps(t *testing.T) {
	raw := `WEBVTT

00:00:00.000 --> 00:00:02.000
word<00:00:00.500> by<00:00:01.000> word
`
	if got := PlainText(raw); got != "word by word" {
		t.Fatalf("PlainText = %q", got)
	}
}
