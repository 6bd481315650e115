package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"whispertube/internal/model"
	"whispertube/internal/sessionfs"
	"whispertube/internal/whisper"
)

// Config holds the persisted run preferences. Zero values are filled in by
// Default / normalize, so a hand-edited preferences file may omit fields.
type Config struct {
	OutputRoot               string `json:"output_root"`
	WhisperModel             string `json:"whisper_model"`
	Device                   string `json:"device"`
	KeepAudio                bool   `json:"keep_audio"`
	ContentType              string `json:"content_type"`
	VideoCount               int    `json:"video_count"`
	CaptionLanguage          string `json:"caption_language"`
	FetchTimeoutSeconds      int    `json:"fetch_timeout_seconds"`
	TranscribeTimeoutSeconds int    `json:"transcribe_timeout_seconds"`
}

func Default() Config {
	return Config{
		OutputRoot:               "transcripts",
		WhisperModel:             string(whisper.ModelBase),
		Device:                   "auto",
		ContentType:              string(model.FilterLongform),
		VideoCount:               10,
		CaptionLanguage:          "en",
		FetchTimeoutSeconds:      120,
		TranscribeTimeoutSeconds: 1800,
	}
}

func (c *Config) normalize() {
	def := Default()
	if strings.TrimSpace(c.OutputRoot) == "" {
		c.OutputRoot = def.OutputRoot
	}
	if strings.TrimSpace(c.WhisperModel) == "" {
		c.WhisperModel = def.WhisperModel
	}
	if strings.TrimSpace(c.Device) == "" {
		c.Device = def.Device
	}
	if strings.TrimSpace(c.ContentType) == "" {
		c.ContentType = def.ContentType
	}
	if c.VideoCount < 0 {
		c.VideoCount = 0
	}
	if strings.TrimSpace(c.CaptionLanguage) == "" {
		c.CaptionLanguage = def.CaptionLanguage
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if c.TranscribeTimeoutSeconds <= 0 {
		c.TranscribeTimeoutSeconds = def.TranscribeTimeoutSeconds
	}
}

func (c Config) Validate() error {
	if _, err := whisper.ParseModelSize(c.WhisperModel); err != nil {
		return err
	}
	if _, err := whisper.ParseDevice(c.Device); err != nil {
		return err
	}
	if _, err := ParseContentType(c.ContentType); err != nil {
		return err
	}
	return nil
}

// ParseContentType maps a user-facing content type to a kind filter.
func ParseContentType(raw string) (model.KindFilter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "longform", "videos":
		return model.FilterLongform, nil
	case "shorts":
		return model.FilterShorts, nil
	case "both", "all":
		return model.FilterBoth, nil
	default:
		return "", fmt.Errorf("invalid content type %q (expected longform, shorts, or both)", strings.TrimSpace(raw))
	}
}

func (c Config) KindFilter() model.KindFilter {
	filter, err := ParseContentType(c.ContentType)
	if err != nil {
		return model.FilterLongform
	}
	return filter
}

func (c Config) ModelSize() whisper.ModelSize {
	size, err := whisper.ParseModelSize(c.WhisperModel)
	if err != nil {
		return whisper.ModelBase
	}
	return size
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c Config) TranscribeTimeout() time.Duration {
	return time.Duration(c.TranscribeTimeoutSeconds) * time.Second
}

// DefaultPath is the preferences file location under the user config dir.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "whispertube", "preferences.json"), nil
}

// Load reads preferences from path, layering in order: built-in defaults,
// the JSON file if present, then WHISPERTUBE_* environment variables. A
// .env file in the working directory is picked up first so local overrides
// work without exporting anything.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := sessionfs.ReadJSON(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read preferences %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat preferences %s: %w", path, err)
	}

	applyEnv(&cfg)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes preferences atomically, creating parent folders as needed.
func Save(path string, cfg Config) error {
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := sessionfs.WriteJSON(path, cfg); err != nil {
		return fmt.Errorf("write preferences %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("WHISPERTUBE_OUTPUT_ROOT", &cfg.OutputRoot)
	setString("WHISPERTUBE_WHISPER_MODEL", &cfg.WhisperModel)
	setString("WHISPERTUBE_DEVICE", &cfg.Device)
	setString("WHISPERTUBE_CONTENT_TYPE", &cfg.ContentType)
	setString("WHISPERTUBE_CAPTION_LANGUAGE", &cfg.CaptionLanguage)

	if v := strings.TrimSpace(os.Getenv("WHISPERTUBE_KEEP_AUDIO")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.KeepAudio = parsed
		}
	}
	setInt := func(key string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	setInt("WHISPERTUBE_VIDEO_COUNT", &cfg.VideoCount)
	setInt("WHISPERTUBE_FETCH_TIMEOUT", &cfg.FetchTimeoutSeconds)
	setInt("WHISPERTUBE_TRANSCRIBE_TIMEOUT", &cfg.TranscribeTimeoutSeconds)
}
