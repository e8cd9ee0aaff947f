package milvus

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultAddress    = "localhost:19530"
	DefaultCollection = "youtube_transcripts"
)

// Collection field names.
const (
	fieldID       = "id"
	fieldContent  = "content"
	fieldTitle    = "video_title"
	fieldURL      = "video_url"
	fieldFilename = "filename"
	fieldSource   = "source"
	fieldSeq      = "seq"
	fieldVector   = "embedding"
)

// VarChar length limits.
const (
	idMaxLength      = "255"
	contentMaxLength = "65535"
	metaMaxLength    = "1024"
)

// maxScanRows bounds non-vector queries. Milvus caps a single query
// window at 16384 entries.
const maxScanRows = 16384

// Config holds configuration for the Milvus vector store.
type Config struct {
	// Address is the Milvus server address (default: localhost:19530).
	Address string

	// Collection is the collection name (default: youtube_transcripts).
	Collection string
}

// Store is a VectorStore backed by a Milvus collection.
type Store struct {
	client     *milvusclient.Client
	address    string
	collection string
}

// NewStore connects to a Milvus server. The collection itself is not
// touched until the first write.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	cli, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address: cfg.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to milvus at %s: %w", cfg.Address, err)
	}

	return &Store{
		client:     cli,
		address:    cfg.Address,
		collection: cfg.Collection,
	}, nil
}

// Address returns the server address the store is connected to.
func (s *Store) Address() string {
	return s.address
}

// Collection returns the collection name the store writes to.
func (s *Store) Collection() string {
	return s.collection
}

// Close releases the client connection.
func (s *Store) Close() error {
	return s.client.Close(context.Background())
}

// ==================== VectorStore ====================

// ReplaceAll replaces the entire collection contents. The collection is
// dropped and recreated so the embedding dimensionality always follows
// the incoming chunks.
func (s *Store) ReplaceAll(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("replacing chunks: empty chunk set")
	}

	dims := len(chunks[0].Embedding)
	if dims == 0 {
		return fmt.Errorf("replacing chunks: chunk %s has no embedding", chunks[0].ID)
	}
	for _, chunk := range chunks {
		if len(chunk.Embedding) != dims {
			return fmt.Errorf("chunk %s has %d dimensions, expected %d: %w",
				chunk.ID, len(chunk.Embedding), dims, domain.ErrDimensionMismatch)
		}
	}

	if err := s.recreateCollection(ctx, dims); err != nil {
		return err
	}

	ids := make([]string, len(chunks))
	contents := make([]string, len(chunks))
	titles := make([]string, len(chunks))
	urls := make([]string, len(chunks))
	filenames := make([]string, len(chunks))
	sources := make([]string, len(chunks))
	seqs := make([]int64, len(chunks))
	vectors := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ID
		contents[i] = chunk.Text
		titles[i] = chunk.Meta.VideoTitle
		urls[i] = chunk.Meta.VideoURL
		filenames[i] = chunk.Meta.Filename
		sources[i] = chunk.Meta.Source
		seqs[i] = int64(i)
		vectors[i] = chunk.Embedding
	}

	insertOpt := milvusclient.NewColumnBasedInsertOption(s.collection,
		column.NewColumnVarChar(fieldID, ids),
		column.NewColumnVarChar(fieldContent, contents),
		column.NewColumnVarChar(fieldTitle, titles),
		column.NewColumnVarChar(fieldURL, urls),
		column.NewColumnVarChar(fieldFilename, filenames),
		column.NewColumnVarChar(fieldSource, sources),
		column.NewColumnInt64(fieldSeq, seqs),
		column.NewColumnFloatVector(fieldVector, dims, vectors),
	)
	if _, err := s.client.Insert(ctx, insertOpt); err != nil {
		return fmt.Errorf("saving chunks: %w", err)
	}

	return nil
}

// Query returns the k nearest chunks, ascending by distance.
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]domain.Match, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("querying chunks: empty query vector")
	}
	if k <= 0 {
		return []domain.Match{}, nil
	}

	exists, err := s.hasCollection(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrEmptyStore
	}

	dims, err := s.collectionDims(ctx)
	if err != nil {
		return nil, err
	}
	if dims > 0 && len(vector) != dims {
		return nil, fmt.Errorf("query has %d dimensions, store has %d: %w",
			len(vector), dims, domain.ErrDimensionMismatch)
	}

	searchOpt := milvusclient.NewSearchOption(s.collection, k, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField(fieldVector).
		WithOutputFields(fieldContent, fieldTitle, fieldURL, fieldFilename, fieldSource).
		WithConsistencyLevel(entity.ClStrong)

	resultSets, err := s.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	if len(resultSets) == 0 || resultSets[0].ResultCount == 0 {
		return nil, domain.ErrEmptyStore
	}

	rs := resultSets[0]
	matches := make([]domain.Match, 0, rs.ResultCount)
	for i := 0; i < rs.ResultCount; i++ {
		id, err := rs.IDs.GetAsString(i)
		if err != nil {
			return nil, fmt.Errorf("reading chunk id: %w", err)
		}
		content, err := resultString(rs, fieldContent, i)
		if err != nil {
			return nil, err
		}
		title, err := resultString(rs, fieldTitle, i)
		if err != nil {
			return nil, err
		}
		url, err := resultString(rs, fieldURL, i)
		if err != nil {
			return nil, err
		}
		filename, err := resultString(rs, fieldFilename, i)
		if err != nil {
			return nil, err
		}
		source, err := resultString(rs, fieldSource, i)
		if err != nil {
			return nil, err
		}

		var score float32
		if i < len(rs.Scores) {
			score = rs.Scores[i]
		}

		matches = append(matches, domain.Match{
			ID:   id,
			Text: content,
			Meta: domain.ChunkMeta{
				VideoTitle: title,
				VideoURL:   url,
				Filename:   filename,
				Source:     source,
			},
			Distance: scoreToDistance(score),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	return matches, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	exists, err := s.hasCollection(ctx)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	queryOpt := milvusclient.NewQueryOption(s.collection).
		WithOutputFields("count(*)").
		WithConsistencyLevel(entity.ClStrong)

	rs, err := s.client.Query(ctx, queryOpt)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}

	col := rs.GetColumn("count(*)")
	if col == nil || col.Len() == 0 {
		return 0, nil
	}
	count, err := col.GetAsInt64(0)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}

	return int(count), nil
}

// DistinctSources enumerates unique source videos in first-seen
// ingestion order. The seq field records insertion order, which Milvus
// does not otherwise preserve across query results.
func (s *Store) DistinctSources(ctx context.Context) ([]domain.SourceRef, error) {
	exists, err := s.hasCollection(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []domain.SourceRef{}, nil
	}

	queryOpt := milvusclient.NewQueryOption(s.collection).
		WithOutputFields(fieldTitle, fieldURL, fieldFilename, fieldSeq).
		WithLimit(maxScanRows).
		WithConsistencyLevel(entity.ClStrong)

	rs, err := s.client.Query(ctx, queryOpt)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}

	titleCol := rs.GetColumn(fieldTitle)
	urlCol := rs.GetColumn(fieldURL)
	fileCol := rs.GetColumn(fieldFilename)
	seqCol := rs.GetColumn(fieldSeq)
	if titleCol == nil || urlCol == nil || fileCol == nil || seqCol == nil {
		return []domain.SourceRef{}, nil
	}

	type sourceRow struct {
		ref domain.SourceRef
		seq int64
	}
	rows := make([]sourceRow, 0, titleCol.Len())
	for i := 0; i < titleCol.Len(); i++ {
		title, err := titleCol.GetAsString(i)
		if err != nil {
			return nil, fmt.Errorf("reading source row %d: %w", i, err)
		}
		url, err := urlCol.GetAsString(i)
		if err != nil {
			return nil, fmt.Errorf("reading source row %d: %w", i, err)
		}
		filename, err := fileCol.GetAsString(i)
		if err != nil {
			return nil, fmt.Errorf("reading source row %d: %w", i, err)
		}
		seq, err := seqCol.GetAsInt64(i)
		if err != nil {
			return nil, fmt.Errorf("reading source row %d: %w", i, err)
		}
		rows = append(rows, sourceRow{
			ref: domain.SourceRef{
				VideoTitle: title,
				VideoURL:   url,
				Filename:   filename,
			},
			seq: seq,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].seq < rows[j].seq
	})

	seen := make(map[domain.SourceRef]struct{})
	sources := make([]domain.SourceRef, 0)
	for _, row := range rows {
		if _, ok := seen[row.ref]; ok {
			continue
		}
		seen[row.ref] = struct{}{}
		sources = append(sources, row.ref)
	}

	return sources, nil
}

// ==================== Collection management ====================

func (s *Store) hasCollection(ctx context.Context) (bool, error) {
	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(s.collection))
	if err != nil {
		return false, fmt.Errorf("checking collection %s: %w", s.collection, err)
	}
	return exists, nil
}

// recreateCollection drops any existing collection and creates a fresh
// one with the given embedding dimensionality, indexed and loaded.
func (s *Store) recreateCollection(ctx context.Context, dims int) error {
	exists, err := s.hasCollection(ctx)
	if err != nil {
		return err
	}
	if exists {
		dropOpt := milvusclient.NewDropCollectionOption(s.collection)
		if err := s.client.DropCollection(ctx, dropOpt); err != nil {
			return fmt.Errorf("dropping collection %s: %w", s.collection, err)
		}
	}

	schema := &entity.Schema{
		CollectionName: s.collection,
		Description:    "YouTube transcript chunks with embeddings",
		Fields: []*entity.Field{
			{
				Name:       fieldID,
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": idMaxLength,
				},
			},
			{
				Name:     fieldContent,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": contentMaxLength,
				},
			},
			{
				Name:     fieldTitle,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": metaMaxLength,
				},
			},
			{
				Name:     fieldURL,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": metaMaxLength,
				},
			},
			{
				Name:     fieldFilename,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": metaMaxLength,
				},
			},
			{
				Name:     fieldSource,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": metaMaxLength,
				},
			},
			{
				Name:     fieldSeq,
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     fieldVector,
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", dims),
				},
			},
		},
	}

	createOpt := milvusclient.NewCreateCollectionOption(s.collection, schema)
	if err := s.client.CreateCollection(ctx, createOpt); err != nil {
		return fmt.Errorf("creating collection %s: %w", s.collection, err)
	}

	vectorIdx := index.NewHNSWIndex(entity.COSINE, 16, 200)
	indexOpt := milvusclient.NewCreateIndexOption(s.collection, fieldVector, vectorIdx)
	indexTask, err := s.client.CreateIndex(ctx, indexOpt)
	if err != nil {
		return fmt.Errorf("creating vector index: %w", err)
	}
	if err := indexTask.Await(ctx); err != nil {
		return fmt.Errorf("creating vector index: %w", err)
	}

	loadOpt := milvusclient.NewLoadCollectionOption(s.collection)
	loadTask, err := s.client.LoadCollection(ctx, loadOpt)
	if err != nil {
		return fmt.Errorf("loading collection %s: %w", s.collection, err)
	}
	if err := loadTask.Await(ctx); err != nil {
		return fmt.Errorf("loading collection %s: %w", s.collection, err)
	}

	return nil
}

// collectionDims reads the embedding dimensionality from the collection
// schema. Returns 0 when the schema does not declare one.
func (s *Store) collectionDims(ctx context.Context) (int, error) {
	describeOpt := milvusclient.NewDescribeCollectionOption(s.collection)
	coll, err := s.client.DescribeCollection(ctx, describeOpt)
	if err != nil {
		return 0, fmt.Errorf("describing collection %s: %w", s.collection, err)
	}
	if coll == nil || coll.Schema == nil {
		return 0, nil
	}
	for _, field := range coll.Schema.Fields {
		if field.Name != fieldVector {
			continue
		}
		dims, err := strconv.Atoi(field.TypeParams["dim"])
		if err != nil {
			return 0, nil
		}
		return dims, nil
	}
	return 0, nil
}

// ==================== Helpers ====================

// scoreToDistance converts a COSINE search score (cosine similarity in
// [-1,1]) to the normalised distance in [0,1] shared by every backend.
func scoreToDistance(score float32) float64 {
	distance := (1 - float64(score)) / 2
	if distance < 0 {
		return 0
	}
	if distance > 1 {
		return 1
	}
	return distance
}

// resultString reads a string output field from a search result set.
func resultString(rs milvusclient.ResultSet, field string, i int) (string, error) {
	col := rs.GetColumn(field)
	if col == nil {
		return "", fmt.Errorf("column %s missing from result", field)
	}
	value, err := col.GetAsString(i)
	if err != nil {
		return "", fmt.Errorf("reading %s row %d: %w", field, i, err)
	}
	return value, nil
}
