package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List the videos in the vector store",
	Long:  `Lists the distinct videos whose transcripts are currently ingested.`,
	RunE:  runVideos,
}

func init() {
	rootCmd.AddCommand(videosCmd)
}

func runVideos(cmd *cobra.Command, _ []string) error {
	if systemService == nil {
		return errors.New("system service not configured")
	}

	videos, err := systemService.Videos(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing videos: %w", err)
	}

	if len(videos) == 0 {
		cmd.Println("No videos ingested. Run 'tuberag ingest' first.")
		return nil
	}

	cmd.Printf("%d video(s):\n\n", len(videos))
	for _, video := range videos {
		title := video.VideoTitle
		if title == "" {
			title = video.Filename
		}
		cmd.Printf("  - %s\n", title)
		if video.VideoURL != "" {
			cmd.Printf("    %s\n", video.VideoURL)
		}
	}

	return nil
}
