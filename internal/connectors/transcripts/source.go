// Package transcripts reads a directory of transcript text files and
// watches it for changes. It implements driven.TranscriptSource.
package transcripts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// Source loads transcripts from a local directory.
type Source struct {
	dir string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

var _ driven.TranscriptSource = (*Source)(nil)

// New creates a transcript source rooted at dir.
func New(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the corpus directory.
func (s *Source) Dir() string {
	return s.dir
}

// Load reads every transcript file in the directory. Subdirectories
// and hidden files are skipped. Returns an empty slice, not an error,
// when the directory exists but holds no transcript files.
func (s *Source) Load(ctx context.Context) ([]domain.Transcript, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading transcripts dir: %w", err)
	}

	transcripts := make([]domain.Transcript, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !isTranscriptFile(entry.Name()) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading transcript %s: %w", entry.Name(), err)
		}

		transcripts = append(transcripts, Parse(entry.Name(), string(data)))
	}

	return transcripts, nil
}

// Watch emits a TranscriptChange whenever a transcript file in the
// directory is created, written, removed or renamed. The channel
// closes when ctx is cancelled or the source is closed.
func (s *Source) Watch(ctx context.Context) (<-chan driven.TranscriptChange, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("transcript source is closed")
	}
	s.mu.Unlock()

	info, err := os.Stat(s.dir)
	if err != nil {
		return nil, fmt.Errorf("transcripts dir error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("transcripts dir error: %s is not a directory", s.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	changes := make(chan driven.TranscriptChange)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isRelevantEvent(event) {
					continue
				}
				select {
				case changes <- driven.TranscriptChange{Path: event.Name}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Watch errors are transient; the next full rebuild
				// re-reads the directory anyway.
			}
		}
	}()

	return changes, nil
}

// Close stops any active watcher. It is safe to call multiple times.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// isTranscriptFile reports whether a directory entry looks like a
// transcript: a visible .txt file.
func isTranscriptFile(name string) bool {
	return strings.HasSuffix(name, ".txt") && !strings.HasPrefix(name, ".")
}

// isRelevantEvent filters watcher noise down to transcript file
// create/write/remove/rename.
func isRelevantEvent(event fsnotify.Event) bool {
	if !isTranscriptFile(filepath.Base(event.Name)) {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}
