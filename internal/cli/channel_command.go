package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"whispertube/internal/config"
	"whispertube/internal/model"
	"whispertube/internal/pipeline"
	"whispertube/internal/sessionfs"
	"whispertube/internal/ytdlp"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

func runChannel(args []string) error {
	fs := flag.NewFlagSet("channel", flag.ContinueOnError)
	var flags runFlags
	flags.register(fs)
	count := fs.Int("count", 0, "number of videos to process (0 uses the saved preference)")
	contentType := fs.String("type", "", "content type: longform|shorts|both")
	jsonOut := fs.Bool("json", false, "print the run summary as JSON")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: whispertube channel [flags] <channel-url>")
	}

	channelURL := strings.TrimSpace(fs.Arg(0))
	if !ytdlp.IsChannelURL(channelURL) {
		return fmt.Errorf("%s does not look like a channel URL", channelURL)
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if *count > 0 {
		cfg.VideoCount = *count
	}
	if strings.TrimSpace(*contentType) != "" {
		cfg.ContentType = *contentType
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := ytdlp.CheckDependencies(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := runChannelPipeline(ctx, cfg, channelURL, flags.verbose, !*jsonOut)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(summary)
	}
	printSummary(summary)
	return nil
}

// runChannelPipeline enumerates the channel and processes each video in turn.
// The wizard reuses it after collecting its answers.
func runChannelPipeline(ctx context.Context, cfg config.Config, channelURL string, verbose, printProgress bool) (model.RunSummary, error) {
	application := newApp(cfg, verbose)

	refs, err := pipeline.Enumerate(ctx, application.client, pipeline.EnumerateOptions{
		ChannelURL: channelURL,
		Filter:     cfg.KindFilter(),
		Limit:      cfg.VideoCount,
	})
	if err != nil {
		return model.RunSummary{}, err
	}
	if len(refs) == 0 {
		return model.RunSummary{}, fmt.Errorf("no matching videos found on %s", channelURL)
	}

	sessionName := refs[0].ChannelName
	if sessionName == "" {
		sessionName = ytdlp.ChannelName(channelURL)
	}
	session, err := sessionfs.NewSession(cfg.OutputRoot, sessionfs.KindChannel, sessionName, time.Now())
	if err != nil {
		return model.RunSummary{}, err
	}
	defer func() {
		_ = session.Close()
	}()

	writer, err := pipeline.NewResultWriter(session.CSVPath())
	if err != nil {
		return model.RunSummary{}, err
	}
	defer func() {
		_ = writer.Close()
	}()

	if printProgress {
		fmt.Printf("%s\n", titleStyle.Render(fmt.Sprintf("processing %d videos from %s", len(refs), sessionName)))
		fmt.Printf("%s\n", mutedStyle.Render("session: "+session.Dir))
	}

	runner := &pipeline.Runner{
		Info:     application.client,
		Resolver: application.resolver,
		Session:  session,
		Writer:   writer,
	}
	if printProgress {
		runner.Progress = func(state model.ProgressState) {
			line := fmt.Sprintf("[%d/%d] %s", state.Processed, state.Total, state.CurrentTitle)
			if state.LastError != "" {
				fmt.Printf("%s %s\n", line, errorStyle.Render("failed: "+state.LastError))
				return
			}
			fmt.Println(line)
		}
	}

	return runner.Run(ctx, channelURL, refs)
}

func printSummary(summary model.RunSummary) {
	fmt.Println()
	if summary.Cancelled {
		fmt.Printf("%s\n", errorStyle.Render("run cancelled"))
	} else {
		fmt.Printf("%s\n", okStyle.Render("run complete"))
	}
	fmt.Printf("processed: %d/%d\n", summary.Processed, summary.Total)
	fmt.Printf("  manual captions:   %d\n", summary.Counts.Manual)
	fmt.Printf("  auto captions:     %d\n", summary.Counts.AutoGenerated)
	fmt.Printf("  foreign captions:  %d\n", summary.Counts.ForeignFallback)
	fmt.Printf("  whisper:           %d\n", summary.Counts.AIGenerated)
	fmt.Printf("  no transcript:     %d\n", summary.Counts.None)
	fmt.Printf("csv: %s\n", summary.CSVPath)
	fmt.Printf("elapsed: %s", formatDuration(summary.Duration()))
	if summary.Processed > 0 {
		fmt.Printf(" (%s per video)", formatDuration(summary.AveragePerVideo()))
	}
	fmt.Println()
}
