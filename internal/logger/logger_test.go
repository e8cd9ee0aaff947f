package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture points log output at a buffer and restores the package state when
// the test finishes.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestVerboseToggle(t *testing.T) {
	capture(t, false)

	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseLines(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("fetched %d captions", 7) }, "[DEBUG] fetched 7 captions\n"},
		{"info", func() { Info("embedding batch %d", 3) }, "[INFO] embedding batch 3\n"},
		{"warn", func() { Warn("no captions for video") }, "[WARN] no captions for video\n"},
		{"section", func() { Section("Chunking") }, "\n=== Chunking ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestQuietModeSuppressesAllButError(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	assert.Zero(t, buf.Len())

	Error("ingest failed: %s", "boom")
	assert.Equal(t, "[ERROR] ingest failed: boom\n", buf.String())
}

func TestConcurrentUse(t *testing.T) {
	capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(true)
		}(i)
	}
	wg.Wait()
}
