package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/repolens/repolens/internal/pipeline"
)

const (
	snapshotsDir = "snapshots"
	objectsDir   = "objects"
	indexFile    = "index.json"
)

// Store provides content-addressable storage for analysis snapshots.
// The full pipeline result is stored as a content-addressed object so
// diffs can reach back to the complete data, not only the summary.
type Store struct {
	mu      sync.RWMutex
	rootDir string
	index   *Index
}

// NewStore creates or opens a snapshot store at the given directory.
func NewStore(rootDir string) (*Store, error) {
	s := &Store{rootDir: rootDir}

	dirs := []string{
		filepath.Join(rootDir, snapshotsDir),
		filepath.Join(rootDir, objectsDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", dir, err)
		}
	}

	if err := s.loadIndex(); err != nil {
		s.index = &Index{
			Snapshots: []Summary{},
			UpdatedAt: time.Now(),
		}
	}

	return s, nil
}

// Save persists a snapshot together with its full analysis result.
func (s *Store) Save(snap *Snapshot, result *pipeline.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resultData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.writeObject(snap.ContentHash, resultData); err != nil {
		return fmt.Errorf("store result object: %w", err)
	}

	snapDir := filepath.Join(s.rootDir, snapshotsDir, snap.ID)
	if err := os.MkdirAll(snapDir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	snapData, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(snapDir, "snapshot.json"), snapData, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.index.Snapshots = append(s.index.Snapshots, snap.Summary())
	s.index.UpdatedAt = time.Now()
	return s.saveIndex()
}

// Load retrieves a snapshot by ID.
func (s *Store) Load(id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadLocked(id)
}

func (s *Store) loadLocked(id string) (*Snapshot, error) {
	snapPath := filepath.Join(s.rootDir, snapshotsDir, id, "snapshot.json")
	data, err := os.ReadFile(snapPath)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", id, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// LoadResult retrieves the full analysis result stored with a snapshot.
func (s *Store) LoadResult(snap *Snapshot) (*pipeline.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.readObject(snap.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("read result object for %s: %w", snap.ID, err)
	}

	var result pipeline.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result for %s: %w", snap.ID, err)
	}
	return &result, nil
}

// List returns all snapshot summaries, newest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Summary, len(s.index.Snapshots))
	copy(result, s.index.Snapshots)

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

// FindByTag returns the snapshot with the given tag.
func (s *Store) FindByTag(tag string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, summary := range s.index.Snapshots {
		if summary.Tag == tag {
			return s.loadLocked(summary.ID)
		}
	}
	return nil, fmt.Errorf("snapshot with tag %q not found", tag)
}

// Tag assigns a tag to a snapshot.
func (s *Store) Tag(id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked(id)
	if err != nil {
		return err
	}

	snap.Tag = tag
	snapData, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	snapPath := filepath.Join(s.rootDir, snapshotsDir, id, "snapshot.json")
	if err := os.WriteFile(snapPath, snapData, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	for i, summary := range s.index.Snapshots {
		if summary.ID == id {
			s.index.Snapshots[i].Tag = tag
			break
		}
	}
	s.index.UpdatedAt = time.Now()
	return s.saveIndex()
}

// Delete removes a snapshot.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapDir := filepath.Join(s.rootDir, snapshotsDir, id)
	if err := os.RemoveAll(snapDir); err != nil {
		return fmt.Errorf("remove snapshot dir: %w", err)
	}

	filtered := s.index.Snapshots[:0]
	for _, summary := range s.index.Snapshots {
		if summary.ID != id {
			filtered = append(filtered, summary)
		}
	}
	s.index.Snapshots = filtered
	s.index.UpdatedAt = time.Now()

	return s.saveIndex()
}

// writeObject stores content by its hash.
func (s *Store) writeObject(hash string, content []byte) error {
	prefix := hash[:2]
	dir := filepath.Join(s.rootDir, objectsDir, prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	objPath := filepath.Join(dir, hash[2:])
	if _, err := os.Stat(objPath); err == nil {
		return nil // already exists (content-addressable dedup)
	}

	return os.WriteFile(objPath, content, 0o644)
}

// readObject retrieves content by its hash.
func (s *Store) readObject(hash string) ([]byte, error) {
	prefix := hash[:2]
	objPath := filepath.Join(s.rootDir, objectsDir, prefix, hash[2:])
	return os.ReadFile(objPath)
}

func (s *Store) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(s.rootDir, indexFile))
	if err != nil {
		return err
	}
	s.index = &Index{}
	return json.Unmarshal(data, s.index)
}

func (s *Store) saveIndex() error {
	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.rootDir, indexFile), data, 0o644)
}
