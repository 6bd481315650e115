package transcript

import (
	"regexp"
	"strings"
)

var (
	cueTag     = regexp.MustCompile(`<[^>]*>`)
	timestamps = regexp.MustCompile(`\d{2}:\d{2}(:\d{2})?\.\d{3}`)
)

// PlainText converts raw WEBVTT caption data to plain transcript text. Cue
// timing lines, numbering, styling blocks, and inline tags are dropped, and
// consecutive duplicate lines are collapsed since auto-generated captions
// repeat each line as it scrolls.
func PlainText(raw string) string {
	var parts []string
	var prev string
	inBlock := false
	// The header block runs from the WEBVTT signature to the first blank line.
	inHeader := strings.HasPrefix(strings.TrimSpace(raw), "WEBVTT")

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if inHeader {
			if line == "" {
				inHeader = false
			}
			continue
		}
		switch {
		case line == "":
			inBlock = false
			continue
		case strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") || strings.HasPrefix(line, "REGION"):
			inBlock = true
			continue
		case inBlock:
			continue
		case strings.Contains(line, "-->"):
			continue
		case isCueNumber(line):
			continue
		}

		line = cueTag.ReplaceAllString(line, "")
		line = timestamps.ReplaceAllString(line, "")
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || line == prev {
			continue
		}
		parts = append(parts, line)
		prev = line
	}
	return strings.Join(parts, " ")
}

func isCueNumber(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
