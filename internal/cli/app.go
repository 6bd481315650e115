package cli

import (
	"flag"
	"fmt"
	"strings"

	"whispertube/internal/config"
	"whispertube/internal/transcript"
	"whispertube/internal/whisper"
	"whispertube/internal/ytdlp"
)

// runFlags are the per-run preference overrides shared by scrape and channel.
type runFlags struct {
	configPath string
	output     string
	model      string
	device     string
	language   string
	keepAudio  bool
	verbose    bool
}

func (f *runFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "preferences file path (defaults to the user config dir)")
	fs.StringVar(&f.output, "output", "", "output root folder (overrides preference)")
	fs.StringVar(&f.model, "model", "", "whisper model: tiny|base|small|medium|large")
	fs.StringVar(&f.device, "device", "", "whisper device: auto|cpu|cuda")
	fs.StringVar(&f.language, "language", "", "preferred caption language code")
	fs.BoolVar(&f.keepAudio, "keep-audio", false, "keep downloaded audio files after transcription")
	fs.BoolVar(&f.verbose, "verbose", false, "print per-strategy fallback progress")
}

// loadConfig layers the saved preferences with the command-line overrides.
func (f *runFlags) loadConfig() (config.Config, error) {
	path := strings.TrimSpace(f.configPath)
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if strings.TrimSpace(f.output) != "" {
		cfg.OutputRoot = f.output
	}
	if strings.TrimSpace(f.model) != "" {
		cfg.WhisperModel = f.model
	}
	if strings.TrimSpace(f.device) != "" {
		cfg.Device = f.device
	}
	if strings.TrimSpace(f.language) != "" {
		cfg.CaptionLanguage = f.language
	}
	if f.keepAudio {
		cfg.KeepAudio = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// app wires the external tool adapters into a transcript resolver.
type app struct {
	cfg      config.Config
	client   *ytdlp.Client
	resolver *transcript.Resolver
}

func newApp(cfg config.Config, verbose bool) *app {
	client := &ytdlp.Client{Timeout: cfg.FetchTimeout()}
	transcriber := &whisper.Transcriber{
		Model:   cfg.ModelSize(),
		Device:  cfg.Device,
		Timeout: cfg.TranscribeTimeout(),
	}
	resolver := &transcript.Resolver{
		Captions:    client,
		Audio:       client,
		Transcriber: transcriber,
		Language:    cfg.CaptionLanguage,
		KeepAudio:   cfg.KeepAudio,
	}
	if verbose {
		resolver.Logf = func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}
	}
	return &app{cfg: cfg, client: client, resolver: resolver}
}
