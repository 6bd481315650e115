package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"whispertube/internal/config"
	"whispertube/internal/whisper"
	"whispertube/internal/ytdlp"
)

type wizardStep struct {
	Key         string
	Label       string
	Placeholder string
	Help        string
	Validate    func(string) error
	// Skip, when set, drops the step based on earlier answers.
	Skip func(map[string]string) bool
}

type wizardModel struct {
	steps   []wizardStep
	index   int
	input   textinput.Model
	answers map[string]string
	errText string
	width   int
	done    bool
	aborted bool
}

// wizardTargetIsVideo reports whether the collected URL addresses a single
// video rather than a channel.
func wizardTargetIsVideo(raw string) bool {
	if ytdlp.IsChannelURL(raw) {
		return false
	}
	_, err := ytdlp.ExtractVideoID(raw)
	return err == nil
}

// parseYesNo maps a yes/no answer; ok is false for an empty answer, which
// keeps the saved preference.
func parseYesNo(v string) (value, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return false, false, nil
	case "y", "yes", "true":
		return true, true, nil
	case "n", "no", "false":
		return false, true, nil
	default:
		return false, false, errors.New("answer yes or no")
	}
}

func wizardSteps(cfg config.Config) []wizardStep {
	skipForSingleVideo := func(answers map[string]string) bool {
		return wizardTargetIsVideo(answers["url"])
	}
	return []wizardStep{
		{
			Key:         "url",
			Label:       "YouTube URL",
			Placeholder: "https://www.youtube.com/@creator",
			Help:        "a channel to process in bulk, or a single video URL",
			Validate: func(v string) error {
				v = strings.TrimSpace(v)
				if v == "" {
					return errors.New("a YouTube URL is required")
				}
				if ytdlp.IsChannelURL(v) {
					return nil
				}
				if _, err := ytdlp.ExtractVideoID(v); err == nil {
					return nil
				}
				return errors.New("enter a channel or video URL")
			},
		},
		{
			Key:         "count",
			Label:       "Video count",
			Placeholder: strconv.Itoa(cfg.VideoCount),
			Help:        "how many videos to process (empty keeps the saved preference)",
			Skip:        skipForSingleVideo,
			Validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return nil
				}
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || n <= 0 {
					return errors.New("enter a positive number")
				}
				return nil
			},
		},
		{
			Key:         "type",
			Label:       "Content type",
			Placeholder: cfg.ContentType,
			Help:        "longform, shorts, or both",
			Skip:        skipForSingleVideo,
			Validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return nil
				}
				_, err := config.ParseContentType(v)
				return err
			},
		},
		{
			Key:         "model",
			Label:       "Whisper model",
			Placeholder: cfg.WhisperModel,
			Help:        "tiny, base, small, medium, or large (used only when captions are missing)",
			Validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return nil
				}
				_, err := whisper.ParseModelSize(v)
				return err
			},
		},
		{
			Key:         "device",
			Label:       "Whisper device",
			Placeholder: cfg.Device,
			Help:        "auto, cpu, or cuda (empty keeps the saved preference)",
			Validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return nil
				}
				_, err := whisper.ParseDevice(v)
				return err
			},
		},
		{
			Key:         "keep_audio",
			Label:       "Keep audio files",
			Placeholder: "no",
			Help:        "keep downloaded audio after transcription: yes or no (empty keeps the saved preference)",
			Validate: func(v string) error {
				_, _, err := parseYesNo(v)
				return err
			},
		},
	}
}

func newWizardModel(cfg config.Config) wizardModel {
	input := textinput.New()
	input.Focus()
	input.Width = 60
	steps := wizardSteps(cfg)
	input.Placeholder = steps[0].Placeholder
	return wizardModel{
		steps:   steps,
		input:   input,
		answers: map[string]string{},
	}
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = clampInt(msg.Width-8, 20, 120)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			step := m.steps[m.index]
			value := strings.TrimSpace(m.input.Value())
			if err := step.Validate(value); err != nil {
				m.errText = err.Error()
				return m, nil
			}
			m.answers[step.Key] = value
			m.errText = ""
			m.index++
			for m.index < len(m.steps) && m.steps[m.index].Skip != nil && m.steps[m.index].Skip(m.answers) {
				m.index++
			}
			if m.index >= len(m.steps) {
				m.done = true
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.input.Placeholder = m.steps[m.index].Placeholder
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m wizardModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	step := m.steps[m.index]
	var b strings.Builder
	b.WriteString(titleStyle.Render("whispertube run setup") + "\n\n")
	b.WriteString(fmt.Sprintf("%s (%d/%d)\n", step.Label, m.index+1, len(m.steps)))
	b.WriteString(mutedStyle.Render(step.Help) + "\n\n")
	b.WriteString(m.input.View() + "\n")
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	}
	b.WriteString(mutedStyle.Render("\nenter to accept, esc to quit") + "\n")
	return b.String()
}

// applyWizardAnswers folds the collected answers into the config. Empty
// answers keep the saved preference.
func applyWizardAnswers(cfg config.Config, answers map[string]string) (config.Config, string, error) {
	target := answers["url"]
	if v := answers["count"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return config.Config{}, "", err
		}
		cfg.VideoCount = n
	}
	if v := answers["type"]; v != "" {
		cfg.ContentType = v
	}
	if v := answers["model"]; v != "" {
		cfg.WhisperModel = v
	}
	if v := answers["device"]; v != "" {
		cfg.Device = v
	}
	keep, ok, err := parseYesNo(answers["keep_audio"])
	if err != nil {
		return config.Config{}, "", err
	}
	if ok {
		cfg.KeepAudio = keep
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, target, nil
}

func runWizard(args []string) error {
	fs := flag.NewFlagSet("wizard", flag.ContinueOnError)
	var flags runFlags
	flags.register(fs)
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("wizard requires an interactive terminal (TTY)")
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if err := ytdlp.CheckDependencies(); err != nil {
		return err
	}

	p := tea.NewProgram(newWizardModel(cfg))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	m, ok := finalModel.(wizardModel)
	if !ok || m.aborted || !m.done {
		return nil
	}

	cfg, target, err := applyWizardAnswers(cfg, m.answers)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if wizardTargetIsVideo(target) {
		videoID, err := ytdlp.ExtractVideoID(target)
		if err != nil {
			return err
		}
		out, err := runSingleVideo(ctx, cfg, videoID, flags.verbose)
		if err != nil {
			return err
		}
		return printSingleResult(out, true)
	}

	summary, err := runChannelPipeline(ctx, cfg, target, flags.verbose, true)
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}
