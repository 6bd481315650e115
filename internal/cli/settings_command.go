package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"whispertube/internal/config"
)

func runSettings(args []string) error {
	if len(args) == 0 {
		printSettingsUsage()
		return nil
	}
	switch args[0] {
	case "show":
		return runSettingsShow(args[1:])
	case "set":
		return runSettingsSet(args[1:])
	case "help", "-h", "--help":
		printSettingsUsage()
		return nil
	default:
		printSettingsUsage()
		return fmt.Errorf("unknown settings subcommand %q", args[0])
	}
}

func settingsPath(flagValue string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return strings.TrimSpace(flagValue), nil
	}
	return config.DefaultPath()
}

func runSettingsShow(args []string) error {
	fs := flag.NewFlagSet("settings show", flag.ContinueOnError)
	configFlag := fs.String("config", "", "preferences file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := settingsPath(*configFlag)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{
			"config_path": path,
			"preferences": cfg,
		})
	}

	fmt.Printf("config: %s\n", path)
	fmt.Printf("output_root: %s\n", cfg.OutputRoot)
	fmt.Printf("whisper_model: %s\n", cfg.WhisperModel)
	fmt.Printf("device: %s\n", cfg.Device)
	fmt.Printf("keep_audio: %t\n", cfg.KeepAudio)
	fmt.Printf("content_type: %s\n", cfg.ContentType)
	fmt.Printf("video_count: %d\n", cfg.VideoCount)
	fmt.Printf("caption_language: %s\n", cfg.CaptionLanguage)
	fmt.Printf("fetch_timeout_seconds: %d\n", cfg.FetchTimeoutSeconds)
	fmt.Printf("transcribe_timeout_seconds: %d\n", cfg.TranscribeTimeoutSeconds)
	return nil
}

func runSettingsSet(args []string) error {
	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	configFlag := fs.String("config", "", "preferences file path")
	outputRoot := fs.String("output-root", "", "output root folder (empty keeps current)")
	whisperModel := fs.String("model", "", "whisper model (empty keeps current)")
	device := fs.String("device", "", "whisper device (empty keeps current)")
	keepAudio := fs.String("keep-audio", "", "keep audio files: true|false (empty keeps current)")
	contentType := fs.String("content-type", "", "content type: longform|shorts|both (empty keeps current)")
	videoCount := fs.Int("video-count", -1, "default video count (-1 keeps current)")
	language := fs.String("language", "", "preferred caption language (empty keeps current)")
	fetchTimeout := fs.Int("fetch-timeout", -1, "per-call yt-dlp timeout in seconds (-1 keeps current)")
	transcribeTimeout := fs.Int("transcribe-timeout", -1, "whisper timeout in seconds (-1 keeps current)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := settingsPath(*configFlag)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if strings.TrimSpace(*outputRoot) != "" {
		cfg.OutputRoot = strings.TrimSpace(*outputRoot)
	}
	if strings.TrimSpace(*whisperModel) != "" {
		cfg.WhisperModel = strings.TrimSpace(*whisperModel)
	}
	if strings.TrimSpace(*device) != "" {
		cfg.Device = strings.TrimSpace(*device)
	}
	switch strings.ToLower(strings.TrimSpace(*keepAudio)) {
	case "":
	case "true", "yes":
		cfg.KeepAudio = true
	case "false", "no":
		cfg.KeepAudio = false
	default:
		return errors.New("--keep-audio must be true or false")
	}
	if strings.TrimSpace(*contentType) != "" {
		cfg.ContentType = strings.TrimSpace(*contentType)
	}
	if *videoCount != -1 {
		if *videoCount < 0 {
			return errors.New("--video-count must be >= 0")
		}
		cfg.VideoCount = *videoCount
	}
	if strings.TrimSpace(*language) != "" {
		cfg.CaptionLanguage = strings.TrimSpace(*language)
	}
	if *fetchTimeout != -1 {
		if *fetchTimeout <= 0 {
			return errors.New("--fetch-timeout must be >= 1")
		}
		cfg.FetchTimeoutSeconds = *fetchTimeout
	}
	if *transcribeTimeout != -1 {
		if *transcribeTimeout <= 0 {
			return errors.New("--transcribe-timeout must be >= 1")
		}
		cfg.TranscribeTimeoutSeconds = *transcribeTimeout
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{
			"config_path": path,
			"preferences": cfg,
		})
	}
	fmt.Printf("updated preferences in %s\n", path)
	return nil
}

func printSettingsUsage() {
	fmt.Println("settings commands:")
	fmt.Println("  settings show [--json]")
	fmt.Println("  settings set [--output-root DIR] [--model SIZE] [--device auto|cpu|cuda]")
	fmt.Println("               [--keep-audio true|false] [--content-type longform|shorts|both]")
	fmt.Println("               [--video-count N] [--language CODE]")
	fmt.Println("               [--fetch-timeout SECONDS] [--transcribe-timeout SECONDS]")
}
