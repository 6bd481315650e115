package ytdlp

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":          "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=x&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                         "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":            "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":                "dQw4w9WgXcQ",
		"dQw4w9WgXcQ":                                          "dQw4w9WgXcQ",
	}
	for in, want := range cases {
		got, err := ExtractVideoID(in)
		if err != nil {
			t.Fatalf("ExtractVideoID(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ExtractVideoID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractVideoIDRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "https://example.com/watch?v=abc", "not a url", "shortid"} {
		if _, err := ExtractVideoID(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestIsChannelURL(t *testing.T) {
	channels := []string{
		"https://www.youtube.com/@SomeCreator",
		"https://www.youtube.com/channel/UCabc123",
		"https://www.youtube.com/c/SomeCreator",
		"https://www.youtube.com/user/oldstyle",
		"https://www.youtube.com/@SomeCreator/videos",
	}
	for _, in := range channels {
		if !IsChannelURL(in) {
			t.Fatalf("expected channel URL: %q", in)
		}
	}
	videos := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
	}
	for _, in := range videos {
		if IsChannelURL(in) {
			t.Fatalf("video URL misread as channel: %q", in)
		}
	}
}

func TestChannelName(t *testing.T) {
	if got := ChannelName("https://www.youtube.com/@SomeCreator/videos"); got != "SomeCreator" {
		t.Fatalf("unexpected channel name %q", got)
	}
	if got := ChannelName("https://www.youtube.com/channel/UCabc123"); got != "UCabc123" {
		t.Fatalf("unexpected channel name %q", got)
	}
	if got := ChannelName("https://example.com/nope"); got != "channel" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestChannelTabURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/@SomeCreator":        "https://www.youtube.com/@SomeCreator/videos",
		"https://www.youtube.com/@SomeCreator/":       "https://www.youtube.com/@SomeCreator/videos",
		"https://www.youtube.com/@SomeCreator/shorts": "https://www.youtube.com/@SomeCreator/videos",
	}
	for in, want := range cases {
		if got := ChannelTabURL(in, "videos"); got != want {
			t.Fatalf("ChannelTabURL(%q) = %q, want %q", in, got, want)
		}
	}
	if got := ChannelTabURL("https://www.youtube.com/@SomeCreator/videos", "shorts"); got != "https://www.youtube.com/@SomeCreator/shorts" {
		t.Fatalf("unexpected shorts tab URL %q", got)
	}
}
