package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

func TestInfoCmd_Use(t *testing.T) {
	assert.Equal(t, "info", infoCmd.Use)
}

func TestInfoCmd_Short(t *testing.T) {
	assert.Equal(t, "Show pipeline status and corpus statistics", infoCmd.Short)
}

func TestInfoCmd_ShowsSystemAndLastRun(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "System Info")
	assert.Contains(t, out, "Status: ready")
	assert.Contains(t, out, "Chunks: 42")
	assert.Contains(t, out, "Embedding model: nomic-embed-text")
	assert.Contains(t, out, "LLM model: llama-3.1-8b-instant")
	assert.Contains(t, out, "Last Ingestion")
	assert.Contains(t, out, "Result: ok (2 transcripts, 4 chunks)")
}

func TestInfoCmd_DegradedSystem(t *testing.T) {
	oldSystem := systemService
	oldIngest := ingestService
	systemService = &mockSystemService{
		info: domain.SystemInfo{
			Status: domain.SystemStatusError,
			Error:  "vector store not configured",
		},
	}
	ingestService = &mockIngestService{lastErr: domain.ErrNotFound}
	defer func() {
		systemService = oldSystem
		ingestService = oldIngest
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Status: error")
	assert.Contains(t, out, "Error: vector store not configured")
	assert.Contains(t, out, "Embedding model: (not set)")
	assert.NotContains(t, out, "Last Ingestion")
}

func TestInfoCmd_FailedLastRun(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	oldIngest := ingestService
	ingestService = &mockIngestService{
		run: domain.IngestRun{
			ID:      "run-9",
			Success: false,
			Error:   "no transcripts found in directory",
		},
	}
	defer func() {
		ingestService = oldIngest
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Result: failed (no transcripts found in directory)")
}

func TestInfoCmd_HistoryUnavailable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	oldIngest := ingestService
	ingestService = &mockIngestService{lastErr: errors.New("history store corrupt")}
	defer func() {
		ingestService = oldIngest
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Last ingestion unavailable")
}

func TestInfoCmd_ServiceNotConfigured(t *testing.T) {
	oldService := systemService
	systemService = nil
	defer func() {
		systemService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"info"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "system service not configured")
}
