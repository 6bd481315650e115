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

	"whispertube/internal/config"
	"whispertube/internal/model"
	"whispertube/internal/pipeline"
	"whispertube/internal/sessionfs"
	"whispertube/internal/ytdlp"
)

// cachedInfo hands the pipeline a metadata snapshot that was already fetched
// for session naming, so a single-video run issues only one metadata call.
type cachedInfo struct {
	info model.VideoInfo
	err  error
}

func (c cachedInfo) FetchInfo(context.Context, string) (model.VideoInfo, error) {
	return c.info, c.err
}

type singleRunResult struct {
	Result     model.TranscriptResult `json:"result"`
	SessionDir string                 `json:"session_dir"`
	CSVPath    string                 `json:"csv_path"`
}

// runSingleVideo processes one video into its own session folder. The folder
// is named from the uploader when metadata is available, falling back to the
// video id.
func runSingleVideo(ctx context.Context, cfg config.Config, videoID string, verbose bool) (singleRunResult, error) {
	application := newApp(cfg, verbose)

	info, infoErr := application.client.FetchInfo(ctx, videoID)
	sessionName := strings.TrimSpace(info.Uploader)
	if infoErr != nil || sessionName == "" {
		sessionName = videoID
	}

	session, err := sessionfs.NewSession(cfg.OutputRoot, sessionfs.KindSingleVideo, sessionName, time.Now())
	if err != nil {
		return singleRunResult{}, err
	}
	defer func() {
		_ = session.Close()
	}()

	writer, err := pipeline.NewResultWriter(session.CSVPath())
	if err != nil {
		return singleRunResult{}, err
	}
	defer func() {
		_ = writer.Close()
	}()

	runner := &pipeline.Runner{
		Info:     cachedInfo{info: info, err: infoErr},
		Resolver: application.resolver,
		Session:  session,
		Writer:   writer,
	}
	res, err := runner.ProcessOne(ctx, model.VideoRef{VideoID: videoID, URL: ytdlp.WatchURL(videoID)})
	if err != nil {
		return singleRunResult{}, err
	}
	return singleRunResult{Result: res, SessionDir: session.Dir, CSVPath: session.CSVPath()}, nil
}

func printSingleResult(out singleRunResult, showText bool) error {
	res := out.Result
	if !res.Succeeded() {
		fmt.Printf("%s\n", errorStyle.Render("no transcript: "+res.Err))
		fmt.Printf("session: %s\n", out.SessionDir)
		return fmt.Errorf("transcript unavailable for %s", res.VideoID)
	}

	fmt.Printf("%s\n", okStyle.Render(fmt.Sprintf("%s (%s, %d chars)", res.Title, res.Source.Label(), res.CharCount)))
	fmt.Printf("session: %s\n", out.SessionDir)
	if showText {
		fmt.Println()
		fmt.Println(strings.TrimSpace(res.Transcript))
	}
	return nil
}

func runScrape(args []string) error {
	fs := flag.NewFlagSet("scrape", flag.ContinueOnError)
	var flags runFlags
	flags.register(fs)
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	noText := fs.Bool("no-text", false, "suppress printing the transcript text")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: whispertube scrape [flags] <video-url>")
	}

	videoID, err := ytdlp.ExtractVideoID(fs.Arg(0))
	if err != nil {
		return err
	}
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if err := ytdlp.CheckDependencies(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out, err := runSingleVideo(ctx, cfg, videoID, flags.verbose)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(out)
	}
	return printSingleResult(out, !*noText)
}
