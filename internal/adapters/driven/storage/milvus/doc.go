// Package milvus provides a VectorStore backed by a Milvus server.
//
// Chunks live in a single collection with an HNSW index over the embedding
// field, using the COSINE metric. Search scores come back as cosine
// similarity and are converted to the normalised [0,1] distance shared by
// every backend, so retrieval behaves the same regardless of which store
// is configured.
//
// A full rebuild drops and recreates the collection, which also lets the
// embedding dimensionality change between rebuilds. The collection is
// created lazily on the first ReplaceAll; read operations against a server
// that has never been ingested into report an empty store.
package milvus
