package transcripts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

func writeTranscript(t *testing.T, dir, name, title, url, body string) {
	t.Helper()
	content := "Video Title: " + title + "\nVideo URL: " + url + "\n===\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestNew(t *testing.T) {
	t.Run("creates source with directory", func(t *testing.T) {
		source := New("/tmp/transcripts")

		require.NotNil(t, source)
		assert.Equal(t, "/tmp/transcripts", source.Dir())
	})

	t.Run("implements TranscriptSource interface", func(t *testing.T) {
		source := New("/tmp")
		var _ driven.TranscriptSource = source
	})
}

func TestSource_Load(t *testing.T) {
	t.Run("loads transcripts from directory", func(t *testing.T) {
		tempDir := t.TempDir()
		writeTranscript(t, tempDir, "cats.txt", "Cats", "u1", "Cats are great pets.")
		writeTranscript(t, tempDir, "dogs.txt", "Dogs", "u2", "Dogs are loyal pets.")

		source := New(tempDir)
		transcripts, err := source.Load(context.Background())

		require.NoError(t, err)
		require.Len(t, transcripts, 2)

		byFile := make(map[string]string)
		for _, tr := range transcripts {
			byFile[tr.Filename] = tr.Title
		}
		assert.Equal(t, "Cats", byFile["cats.txt"])
		assert.Equal(t, "Dogs", byFile["dogs.txt"])
	})

	t.Run("returns empty slice for empty directory", func(t *testing.T) {
		source := New(t.TempDir())

		transcripts, err := source.Load(context.Background())

		require.NoError(t, err)
		assert.Empty(t, transcripts)
	})

	t.Run("skips non-transcript files", func(t *testing.T) {
		tempDir := t.TempDir()
		writeTranscript(t, tempDir, "video.txt", "Video", "u1", "body")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "notes.md"), []byte("# notes"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".hidden.txt"), []byte("hidden"), 0644))
		require.NoError(t, os.Mkdir(filepath.Join(tempDir, "sub.txt"), 0755))

		source := New(tempDir)
		transcripts, err := source.Load(context.Background())

		require.NoError(t, err)
		require.Len(t, transcripts, 1)
		assert.Equal(t, "video.txt", transcripts[0].Filename)
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		source := New("/non/existent/path")

		_, err := source.Load(context.Background())

		assert.Error(t, err)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		tempDir := t.TempDir()
		writeTranscript(t, tempDir, "video.txt", "Video", "u1", "body")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		source := New(tempDir)
		_, err := source.Load(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSource_Watch(t *testing.T) {
	t.Run("emits change when transcript is created", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := source.Watch(ctx)
		require.NoError(t, err)
		require.NotNil(t, changes)

		go func() {
			time.Sleep(50 * time.Millisecond)
			content := "Video Title: New\nVideo URL: u1\n===\nbody"
			os.WriteFile(filepath.Join(tempDir, "new.txt"), []byte(content), 0644)
		}()

		select {
		case change := <-changes:
			assert.Contains(t, change.Path, "new.txt")
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change event")
		}

		cancel()
		source.Close()
	})

	t.Run("ignores non-transcript files", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := source.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.WriteFile(filepath.Join(tempDir, "notes.md"), []byte("x"), 0644)
		}()

		select {
		case change := <-changes:
			t.Fatalf("unexpected change event: %v", change)
		case <-time.After(300 * time.Millisecond):
		}

		cancel()
		source.Close()
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		source := New("/non/existent/path")

		changes, err := source.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "transcripts dir error")
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := source.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			if ok {
				for range changes {
				}
			}
		case <-time.After(2 * time.Second):
			t.Fatal("channel did not close after context cancellation")
		}

		source.Close()
	})

	t.Run("returns error when source is closed", func(t *testing.T) {
		source := New(t.TempDir())
		require.NoError(t, source.Close())

		changes, err := source.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "closed")
	})
}

func TestSource_Close(t *testing.T) {
	t.Run("close is idempotent", func(t *testing.T) {
		source := New("/tmp/test")

		assert.NoError(t, source.Close())
		assert.NoError(t, source.Close())
		assert.NoError(t, source.Close())
	})

	t.Run("close stops an active watcher", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)

		changes, err := source.Watch(context.Background())
		require.NoError(t, err)

		require.NoError(t, source.Close())

		select {
		case _, ok := <-changes:
			assert.False(t, ok, "expected closed channel")
		case <-time.After(2 * time.Second):
			t.Fatal("channel did not close after Close")
		}
	})
}

func TestIsTranscriptFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"video.txt", true},
		{"video transcript.txt", true},
		{"notes.md", false},
		{".hidden.txt", false},
		{"video.TXT", false},
		{"video", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isTranscriptFile(tt.name), "name %q", tt.name)
	}
}
