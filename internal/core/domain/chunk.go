package domain

// Chunk represents one overlapping slice of a transcript.
// Chunks are the unit of embedding and retrieval. They are created
// during ingestion, never mutated, and replaced wholesale by the next
// full rebuild.
type Chunk struct {
	// ID is the unique identifier within the store.
	ID string

	// Text is the chunk content.
	Text string

	// Start is the byte offset of the chunk in the original text.
	Start int

	// End is the byte offset one past the chunk's last byte.
	End int

	// Position is the ordinal position within the transcript.
	Position int

	// Meta is the metadata inherited from the transcript.
	Meta ChunkMeta

	// Embedding is the vector representation. Populated by the
	// embedding step; nil until then.
	Embedding []float32
}
