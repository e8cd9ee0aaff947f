package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

func TestVideosCmd_Use(t *testing.T) {
	assert.Equal(t, "videos", videosCmd.Use)
}

func TestVideosCmd_Short(t *testing.T) {
	assert.Equal(t, "List the videos in the vector store", videosCmd.Short)
}

func TestVideosCmd_ListsVideos(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"videos"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2 video(s):")
	assert.Contains(t, buf.String(), "All About Cats")
	assert.Contains(t, buf.String(), "All About Dogs")
	assert.Contains(t, buf.String(), "https://www.youtube.com/watch?v=dogs456")
}

func TestVideosCmd_EmptyStore(t *testing.T) {
	oldService := systemService
	systemService = &mockSystemService{videos: []domain.SourceRef{}}
	defer func() {
		systemService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"videos"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No videos ingested.")
}

func TestVideosCmd_ServiceError(t *testing.T) {
	oldService := systemService
	systemService = &mockSystemService{err: errors.New("connection lost")}
	defer func() {
		systemService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"videos"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "listing videos")
}

func TestVideosCmd_ServiceNotConfigured(t *testing.T) {
	oldService := systemService
	systemService = nil
	defer func() {
		systemService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"videos"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "system service not configured")
}
