// Package sqlite is the default storage backend. One database file
// under ~/.tuberag/data serves both the VectorStore (chunks with their
// embeddings) and the IngestHistoryStore (past ingestion runs).
//
// The driver is modernc.org/sqlite, pure Go, so the binary
// cross-compiles without CGO. The schema is applied through versioned
// migrations embedded in the migrations/ directory, each run in its
// own transaction.
//
// # Vector Search
//
// Embeddings are stored as little-endian float32 blobs. Queries scan
// the whole collection and rank by cosine distance scaled to [0,1];
// search is exact, there is no approximate index. Milvus is the
// backend for corpora that outgrow a full scan.
//
// The store is safe for concurrent use; SQLite runs in WAL mode and
// handles locking at the database level.
package sqlite
