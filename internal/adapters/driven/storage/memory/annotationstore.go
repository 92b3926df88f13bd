package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of
// driven.AnnotationStore, used in tests and ephemeral sessions.
type AnnotationStore struct {
	mu   sync.RWMutex
	docs map[string]*domain.AnnotationDocument
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		docs: make(map[string]*domain.AnnotationDocument),
	}
}

func key(userID, documentID string) string {
	return userID + "/" + documentID
}

// Load returns the stored document, or a fresh empty one for an
// unknown pair. Missing data is never an error.
func (s *AnnotationStore) Load(_ context.Context, userID, documentID string) (*domain.AnnotationDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.docs[key(userID, documentID)]; ok {
		return doc.Clone(), nil
	}
	return domain.NewAnnotationDocument(userID, documentID), nil
}

// Save stores a deep copy of the document.
func (s *AnnotationStore) Save(_ context.Context, doc *domain.AnnotationDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key(doc.UserID, doc.DocumentID)] = doc.Clone()
	return nil
}

// Delete removes the pair's document.
func (s *AnnotationStore) Delete(_ context.Context, userID, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key(userID, documentID))
	return nil
}

// List returns the document IDs stored for a user.
func (s *AnnotationStore) List(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := userID + "/"
	var ids []string
	for k := range s.docs {
		if strings.HasPrefix(k, prefix) {
			ids = append(ids, strings.TrimPrefix(k, prefix))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Evict is a no-op: the map is the backing storage, not a cache.
func (s *AnnotationStore) Evict(_, _ string) {}

// Reset clears all stored documents.
func (s *AnnotationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]*domain.AnnotationDocument)
}
