package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.AnnotationStore = (*Store)(nil)
	_ driven.Migrator        = (*Store)(nil)
)

// Store persists annotation documents as one AXF file per
// (user, document) pair under <baseDir>/annotations/<user>/<doc>.<ext>.
// Loads go through an in-memory cache keyed by the pair.
type Store struct {
	baseDir string
	codec   driven.Codec

	// catalog, when set, is kept in sync on every save and delete.
	catalog driven.CatalogStore

	mu    sync.RWMutex
	cache map[string]*domain.AnnotationDocument

	watcher *watcher
}

// StoreOption configures the file store.
type StoreOption func(*Store)

// WithCatalog keeps the given catalog updated on saves and deletes.
func WithCatalog(catalog driven.CatalogStore) StoreOption {
	return func(s *Store) {
		s.catalog = catalog
	}
}

// NewStore creates a file store rooted at baseDir. If baseDir is empty,
// it defaults to ~/.inkwell.
func NewStore(baseDir string, codec driven.Codec, opts ...StoreOption) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".inkwell")
	}

	if err := os.MkdirAll(filepath.Join(baseDir, "annotations"), 0700); err != nil {
		return nil, fmt.Errorf("creating annotations directory: %w", err)
	}

	s := &Store{
		baseDir: baseDir,
		codec:   codec,
		cache:   make(map[string]*domain.AnnotationDocument),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Path returns the annotation file path for a pair.
func (s *Store) Path(userID, documentID string) string {
	return filepath.Join(s.userDir(userID), documentID+"."+s.codec.Extension())
}

func (s *Store) userDir(userID string) string {
	return filepath.Join(s.baseDir, "annotations", userID)
}

func cacheKey(userID, documentID string) string {
	return userID + "/" + documentID
}

// Load returns the pair's document from the cache, reading and parsing
// the backing file on a miss. A missing or corrupt file yields a fresh
// empty document, never an error.
func (s *Store) Load(_ context.Context, userID, documentID string) (*domain.AnnotationDocument, error) {
	key := cacheKey(userID, documentID)

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	doc := s.readFile(userID, documentID)

	s.mu.Lock()
	s.cache[key] = doc
	s.mu.Unlock()
	return doc.Clone(), nil
}

// readFile reads and parses the pair's annotation file. All failure
// modes degrade to an empty document so a damaged file never blocks a
// drawing session.
func (s *Store) readFile(userID, documentID string) *domain.AnnotationDocument {
	data, err := os.ReadFile(s.Path(userID, documentID))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("file store: reading %s: %v", s.Path(userID, documentID), err)
		}
		return domain.NewAnnotationDocument(userID, documentID)
	}

	doc, err := s.codec.Decode(data)
	if err != nil {
		logger.Warn("file store: parsing %s: %v", s.Path(userID, documentID), err)
		return domain.NewAnnotationDocument(userID, documentID)
	}

	// The file carries the document identity but not the user's.
	doc.UserID = userID
	doc.DocumentID = documentID
	if info, err := os.Stat(s.Path(userID, documentID)); err == nil {
		doc.UpdatedAt = info.ModTime()
	}
	return doc
}

// Save serializes the document and writes it atomically via a temp
// file and rename, then refreshes the cache and the catalog.
func (s *Store) Save(ctx context.Context, doc *domain.AnnotationDocument) error {
	data, err := s.codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding annotations: %w", err)
	}

	dir := s.userDir(doc.UserID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating user directory: %w", err)
	}

	path := s.Path(doc.UserID, doc.DocumentID)
	tmp, err := os.CreateTemp(dir, "."+doc.DocumentID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing annotations: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	s.mu.Lock()
	s.cache[cacheKey(doc.UserID, doc.DocumentID)] = doc.Clone()
	s.mu.Unlock()

	if s.watcher != nil {
		s.watcher.watchDir(dir)
	}
	if s.catalog != nil {
		entry := domain.CatalogEntry{
			UserID:      doc.UserID,
			DocumentID:  doc.DocumentID,
			StrokeCount: len(doc.Strokes),
			PageCount:   len(doc.Pages()),
			UpdatedAt:   time.Now(),
		}
		if err := s.catalog.Upsert(ctx, entry); err != nil {
			logger.Warn("file store: updating catalog for %s/%s: %v", doc.UserID, doc.DocumentID, err)
		}
	}

	logger.Debug("file store: saved %d strokes to %s", len(doc.Strokes), path)
	return nil
}

// Delete removes the pair's annotation file, cache entry and catalog
// entry. Deleting a missing file is not an error.
func (s *Store) Delete(ctx context.Context, userID, documentID string) error {
	if err := os.Remove(s.Path(userID, documentID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", s.Path(userID, documentID), err)
	}

	s.mu.Lock()
	delete(s.cache, cacheKey(userID, documentID))
	s.mu.Unlock()

	if s.catalog != nil {
		if err := s.catalog.Remove(ctx, userID, documentID); err != nil {
			logger.Warn("file store: removing catalog entry %s/%s: %v", userID, documentID, err)
		}
	}
	return nil
}

// List returns the document IDs that have annotation files for a user,
// sorted.
func (s *Store) List(_ context.Context, userID string) ([]string, error) {
	entries, err := os.ReadDir(s.userDir(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading user directory: %w", err)
	}

	suffix := "." + s.codec.Extension()
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, suffix))
	}
	sort.Strings(ids)
	return ids, nil
}

// Evict drops the cache entry for one pair.
func (s *Store) Evict(userID, documentID string) {
	s.mu.Lock()
	delete(s.cache, cacheKey(userID, documentID))
	s.mu.Unlock()
}

// Reset clears the whole cache.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]*domain.AnnotationDocument)
	s.mu.Unlock()
}

// evictPath drops the cache entry whose backing file lives at path.
// Called by the watcher on external modifications.
func (s *Store) evictPath(path string) {
	suffix := "." + s.codec.Extension()
	if !strings.HasSuffix(path, suffix) {
		return
	}
	documentID := strings.TrimSuffix(filepath.Base(path), suffix)
	userID := filepath.Base(filepath.Dir(path))

	s.mu.Lock()
	_, ok := s.cache[cacheKey(userID, documentID)]
	delete(s.cache, cacheKey(userID, documentID))
	s.mu.Unlock()

	if ok {
		logger.Debug("file store: evicted %s/%s after external change", userID, documentID)
	}
}
