package cli

import (
	"flag"
	"fmt"

	"whispertube/internal/ytdlp"
)

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	report := ytdlp.DependencyStatus()
	if *jsonOut {
		return printJSON(report)
	}

	printDep := func(name string, found bool, path string) {
		if found {
			fmt.Printf("%s %s (%s)\n", okStyle.Render("ok"), name, path)
			return
		}
		fmt.Printf("%s %s not found on PATH\n", errorStyle.Render("missing"), name)
	}
	printDep("yt-dlp", report.YTDLPFound, report.YTDLPPath)
	printDep("ffmpeg", report.FFmpegFound, report.FFmpegPath)
	printDep("whisper", report.WhisperFound, report.WhisperPath)

	if !report.WhisperFound {
		fmt.Println(mutedStyle.Render("whisper is optional: without it, videos lacking captions get no transcript"))
	}
	return ytdlp.CheckDependencies()
}
