// Package domain holds the core types of the transcript pipeline:
// Transcript (one video's extracted text plus metadata), Chunk (an
// overlapping slice of a transcript, the unit of embedding), Match (a
// retrieved chunk with its distance and similarity) and Answer (the
// response object returned for every query).
//
// Domain sits at the centre of the hexagon and imports nothing but the
// standard library. Every other package depends on domain, never the
// reverse.
package domain
