package index

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"greenlens/internal/domain"
	"greenlens/internal/port"
)

var (
	bucketRecords = []byte("records")
	bucketMeta    = []byte("meta")
	keyDimension  = []byte("dimension")
)

// BoltIndex is a bbolt-backed vector index. Records are keyed by a bucket
// sequence number, so inserts accumulate across process lifetimes and ids
// are never reused. Search is brute-force cosine similarity over an
// in-memory cache loaded at open; fine for a single-process index of this
// size, replaceable by HNSW if it ever grows past that.
type BoltIndex struct {
	db   *bbolt.DB
	path string

	mu        sync.RWMutex
	dimension int
	records   map[uint64]cachedRecord
}

type cachedRecord struct {
	vector []float32
	chunk  domain.Chunk
}

type storedRecord struct {
	Vector  []float32 `json:"v"`
	ChunkID string    `json:"chunk_id"`
	DocID   string    `json:"doc_id"`
	Source  string    `json:"source"`
	Page    int       `json:"page"`
	Offset  int       `json:"offset"`
	Text    string    `json:"text"`
}

// Open opens (creating if absent) the index database at path.
func Open(path string) (*BoltIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, domain.Fail(domain.StageIndex, domain.ErrIndexUnavailable, err)
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, domain.Fail(domain.StageIndex, domain.ErrIndexUnavailable, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRecords, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, domain.Fail(domain.StageIndex, domain.ErrIndexUnavailable, err)
	}

	idx := &BoltIndex{
		db:      db,
		path:    path,
		records: make(map[uint64]cachedRecord),
	}

	if err := idx.load(); err != nil {
		db.Close()
		return nil, domain.Fail(domain.StageIndex, domain.ErrIndexUnavailable, err)
	}

	return idx, nil
}

// load reads the persisted dimension and all records into memory.
func (s *BoltIndex) load() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketMeta).Get(keyDimension); data != nil {
			var dim int
			if err := json.Unmarshal(data, &dim); err != nil {
				return fmt.Errorf("corrupt dimension entry: %w", err)
			}
			s.dimension = dim
		}

		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			var stored storedRecord
			if err := json.Unmarshal(v, &stored); err != nil {
				return nil // Skip corrupted entries
			}
			s.records[btoi(k)] = cachedRecord{
				vector: stored.Vector,
				chunk: domain.Chunk{
					ID:     stored.ChunkID,
					DocID:  stored.DocID,
					Source: stored.Source,
					Page:   stored.Page,
					Offset: stored.Offset,
					Text:   stored.Text,
				},
			}
			return nil
		})
	})
}

// Insert appends records in one transaction. Nothing is committed if any
// record fails the dimension check.
func (s *BoltIndex) Insert(records []port.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dimension
	if dim == 0 {
		dim = len(records[0].Vector)
	}

	staged := make(map[uint64]cachedRecord, len(records))
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)

		for _, rec := range records {
			if len(rec.Vector) != dim {
				return fmt.Errorf("%w: index dimension %d, vector has %d",
					domain.ErrDimensionMismatch, dim, len(rec.Vector))
			}

			id, err := b.NextSequence()
			if err != nil {
				return err
			}

			data, err := json.Marshal(storedRecord{
				Vector:  rec.Vector,
				ChunkID: rec.Chunk.ID,
				DocID:   rec.Chunk.DocID,
				Source:  rec.Chunk.Source,
				Page:    rec.Chunk.Page,
				Offset:  rec.Chunk.Offset,
				Text:    rec.Chunk.Text,
			})
			if err != nil {
				return err
			}
			if err := b.Put(itob(id), data); err != nil {
				return err
			}
			staged[id] = cachedRecord{vector: rec.Vector, chunk: rec.Chunk}
		}

		if s.dimension == 0 {
			data, err := json.Marshal(dim)
			if err != nil {
				return err
			}
			return tx.Bucket(bucketMeta).Put(keyDimension, data)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDimensionMismatch) {
			return 0, &domain.StageError{Stage: domain.StageIndex, Err: err}
		}
		return 0, domain.Fail(domain.StageIndex, domain.ErrIndexUnavailable, err)
	}

	// Transaction committed, merge into the cache.
	s.dimension = dim
	for id, rec := range staged {
		s.records[id] = rec
	}

	return len(records), nil
}

// Search returns up to k records nearest to the query by cosine
// similarity, best-first. Ties keep insertion order.
func (s *BoltIndex) Search(query []float32, k int) ([]domain.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != s.dimension {
		return nil, domain.Fail(domain.StageIndex, domain.ErrDimensionMismatch,
			fmt.Errorf("index dimension %d, query has %d", s.dimension, len(query)))
	}

	ids := make([]uint64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	scored := make([]domain.ScoredChunk, 0, len(ids))
	for _, id := range ids {
		rec := s.records[id]
		scored = append(scored, domain.ScoredChunk{
			Chunk: rec.chunk,
			Score: cosineSimilarity(query, rec.vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Stats describes the current index contents.
func (s *BoltIndex) Stats() (domain.IndexStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.IndexStats{
		Records:   len(s.records),
		Dimension: s.dimension,
		Path:      s.path,
	}, nil
}

func (s *BoltIndex) Close() error {
	return s.db.Close()
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
