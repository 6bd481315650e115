package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"whispertube/internal/config"
)

func pressKeys(t *testing.T, m wizardModel, text string) wizardModel {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(wizardModel)
	}
	return m
}

func pressEnter(t *testing.T, m wizardModel) wizardModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(wizardModel)
}

func TestWizardCollectsAnswers(t *testing.T) {
	m := newWizardModel(config.Default())

	m = pressKeys(t, m, "https://www.youtube.com/@Creator")
	m = pressEnter(t, m)
	m = pressKeys(t, m, "3")
	m = pressEnter(t, m)
	m = pressEnter(t, m) // content type: keep preference
	m = pressKeys(t, m, "tiny")
	m = pressEnter(t, m)
	m = pressKeys(t, m, "cpu")
	m = pressEnter(t, m)
	m = pressKeys(t, m, "yes")
	m = pressEnter(t, m)

	if !m.done {
		t.Fatalf("wizard should be done, state: %+v", m)
	}

	cfg, target, err := applyWizardAnswers(config.Default(), m.answers)
	if err != nil {
		t.Fatalf("apply answers: %v", err)
	}
	if target != "https://www.youtube.com/@Creator" {
		t.Fatalf("unexpected target URL %q", target)
	}
	if cfg.VideoCount != 3 {
		t.Fatalf("unexpected video count %d", cfg.VideoCount)
	}
	if cfg.WhisperModel != "tiny" {
		t.Fatalf("unexpected model %q", cfg.WhisperModel)
	}
	if cfg.ContentType != config.Default().ContentType {
		t.Fatalf("content type should keep the preference, got %q", cfg.ContentType)
	}
	if cfg.Device != "cpu" {
		t.Fatalf("unexpected device %q", cfg.Device)
	}
	if !cfg.KeepAudio {
		t.Fatalf("keep audio answer should be applied")
	}
}

func TestWizardVideoURLSkipsChannelSteps(t *testing.T) {
	m := newWizardModel(config.Default())

	m = pressKeys(t, m, "https://www.youtube.com/watch?v=abc123XYZ_-")
	m = pressEnter(t, m)

	if m.steps[m.index].Key != "model" {
		t.Fatalf("single-video runs should jump to the model step, got %q", m.steps[m.index].Key)
	}

	m = pressEnter(t, m) // model: keep preference
	m = pressEnter(t, m) // device: keep preference
	m = pressEnter(t, m) // keep audio: keep preference

	if !m.done {
		t.Fatalf("wizard should be done, state: %+v", m)
	}

	cfg, target, err := applyWizardAnswers(config.Default(), m.answers)
	if err != nil {
		t.Fatalf("apply answers: %v", err)
	}
	if !wizardTargetIsVideo(target) {
		t.Fatalf("target should be recognised as a single video: %q", target)
	}
	if cfg.VideoCount != config.Default().VideoCount {
		t.Fatalf("video count should keep the preference, got %d", cfg.VideoCount)
	}
}

func TestWizardRejectsInvalidChannelURL(t *testing.T) {
	m := newWizardModel(config.Default())

	m = pressKeys(t, m, "not a url")
	m = pressEnter(t, m)

	if m.done || m.index != 0 {
		t.Fatalf("wizard should stay on the first step")
	}
	if m.errText == "" {
		t.Fatalf("expected a validation error")
	}
}

func TestWizardEscAborts(t *testing.T) {
	m := newWizardModel(config.Default())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(wizardModel)
	if !m.aborted {
		t.Fatalf("esc should abort the wizard")
	}
}

func TestWizardRejectsBadCount(t *testing.T) {
	m := newWizardModel(config.Default())
	m = pressKeys(t, m, "https://www.youtube.com/@Creator")
	m = pressEnter(t, m)
	m = pressKeys(t, m, "zero")
	m = pressEnter(t, m)
	if m.index != 1 || m.errText == "" {
		t.Fatalf("bad count should be rejected, state: index=%d err=%q", m.index, m.errText)
	}
}

func TestWizardRejectsBadDevice(t *testing.T) {
	m := newWizardModel(config.Default())
	m = pressKeys(t, m, "https://www.youtube.com/watch?v=abc123XYZ_-")
	m = pressEnter(t, m)
	m = pressEnter(t, m) // model: keep preference
	m = pressKeys(t, m, "gpu3000")
	m = pressEnter(t, m)
	if m.done || m.steps[m.index].Key != "device" || m.errText == "" {
		t.Fatalf("bad device should be rejected, state: key=%q err=%q", m.steps[m.index].Key, m.errText)
	}
}

func TestParseYesNo(t *testing.T) {
	if _, ok, err := parseYesNo(""); ok || err != nil {
		t.Fatalf("empty answer should keep the preference")
	}
	keep, ok, err := parseYesNo("Yes")
	if err != nil || !ok || !keep {
		t.Fatalf("yes should parse to true, got %v %v %v", keep, ok, err)
	}
	keep, ok, err = parseYesNo("n")
	if err != nil || !ok || keep {
		t.Fatalf("n should parse to false, got %v %v %v", keep, ok, err)
	}
	if _, _, err := parseYesNo("maybe"); err == nil {
		t.Fatalf("expected an error for an ambiguous answer")
	}
}
