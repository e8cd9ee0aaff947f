package domain

// SourceYouTubeTranscript tags every chunk produced from a transcript file.
const SourceYouTubeTranscript = "youtube_transcript"

// Transcript represents one video's extracted transcript.
// It is immutable once loaded and is consumed into chunks at ingestion.
type Transcript struct {
	// Title is the video title from the transcript header.
	// Empty when the header line is missing.
	Title string

	// URL is the video URL from the transcript header.
	// Empty when the header line is missing.
	URL string

	// Filename is the transcript file's base name.
	Filename string

	// Text is the full transcript body, header lines excluded.
	Text string
}

// Meta returns the metadata inherited by every chunk of this transcript.
func (t *Transcript) Meta() ChunkMeta {
	return ChunkMeta{
		VideoTitle: t.Title,
		VideoURL:   t.URL,
		Filename:   t.Filename,
		Source:     SourceYouTubeTranscript,
	}
}

// ChunkMeta is the metadata carried by a stored chunk.
// Fields are defaulted once, at transcript parse time; downstream
// consumers read them as-is.
type ChunkMeta struct {
	// VideoTitle is the source video's title.
	VideoTitle string

	// VideoURL is the source video's URL.
	VideoURL string

	// Filename is the transcript file the chunk came from.
	Filename string

	// Source identifies the corpus kind (SourceYouTubeTranscript).
	Source string
}

// Ref returns the source attribution triple for this metadata.
func (m ChunkMeta) Ref() SourceRef {
	return SourceRef{
		VideoTitle: m.VideoTitle,
		VideoURL:   m.VideoURL,
		Filename:   m.Filename,
	}
}

// SourceRef identifies the video a retrieved chunk came from.
// Equal triples collapse to one attribution entry in first-seen order.
type SourceRef struct {
	// VideoTitle is the source video's title.
	VideoTitle string

	// VideoURL is the source video's URL.
	VideoURL string

	// Filename is the transcript file name.
	Filename string
}
