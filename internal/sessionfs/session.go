package sessionfs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type SessionKind string

const (
	KindSingleVideo SessionKind = "single_video"
	KindChannel     SessionKind = "channel"
)

// Session owns the on-disk folder tree for one run. It is created once per
// invocation and only ever grows by adding per-video subfolders.
type Session struct {
	Kind      SessionKind
	Root      string
	Dir       string
	Timestamp time.Time

	lock Lock
}

// sessionTimestamp matches the folder naming of earlier releases so sessions
// sort and group the same way across versions.
func sessionTimestamp(now time.Time) string {
	return now.Format("01_02_06_150405")
}

// NewSession creates the session folder {kind}_{slug}_{timestamp} under root
// and locks it for the lifetime of the run.
func NewSession(root string, kind SessionKind, name string, now time.Time) (*Session, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("output root is required")
	}
	slug := Sanitize(name)
	dir := filepath.Join(root, fmt.Sprintf("%s_%s_%s", kind, slug, sessionTimestamp(now)))
	if err := Mkdir(dir); err != nil {
		return nil, err
	}
	lock, err := AcquireLock(dir)
	if err != nil {
		return nil, err
	}
	return &Session{
		Kind:      kind,
		Root:      root,
		Dir:       dir,
		Timestamp: now,
		lock:      lock,
	}, nil
}

// VideoDir creates (if needed) and returns the per-video folder.
func (s *Session) VideoDir(videoID, title string) (string, error) {
	dir := filepath.Join(s.Dir, VideoFolderName(videoID, title))
	if err := Mkdir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// CSVPath is the session transcript CSV location.
func (s *Session) CSVPath() string {
	return filepath.Join(s.Dir, fmt.Sprintf("youtube_transcripts_%s.csv", sessionTimestamp(s.Timestamp)))
}

// Close releases the session lock. The folder and its artifacts remain.
func (s *Session) Close() error {
	return s.lock.Release()
}
