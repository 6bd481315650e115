package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	switch args[0] {
	case "scrape":
		return runScrape(args[1:])
	case "channel":
		return runChannel(args[1:])
	case "wizard":
		return runWizard(args[1:])
	case "settings":
		return runSettings(args[1:])
	case "doctor":
		return runDoctor(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRootUsage() {
	fmt.Println("whispertube: YouTube transcript scraper with Whisper fallback")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  whispertube scrape <video-url>")
	fmt.Println("  whispertube channel <channel-url> --count 10")
	fmt.Println("  whispertube wizard")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scrape    fetch the transcript for a single video")
	fmt.Println("  channel   process a channel's videos into a session folder")
	fmt.Println("  wizard    interactive channel run setup")
	fmt.Println("  settings  show/update saved preferences")
	fmt.Println("  doctor    check yt-dlp, ffmpeg, and whisper availability")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on commands for machine-readable output")
	fmt.Println("  - Transcripts fall back in order: manual captions, auto captions,")
	fmt.Println("    foreign captions, Whisper audio transcription")
}
