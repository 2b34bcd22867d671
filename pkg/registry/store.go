package registry

import (
	"context"
	"sync"
)

// Store is the persistence collaborator: one durable slot holding the
// serialized record collection. The registry owns all (de)serialization; a
// store only moves opaque bytes. Read reports absence distinctly from an
// empty document so the registry can default to an empty collection.
type Store interface {
	Read(ctx context.Context) (document []byte, present bool, err error)
	Write(ctx context.Context, document []byte) error
}

// MemoryStore keeps the slot in process memory. Used in tests and as the
// STORE_BACKEND=memory option for local runs without Redis or Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	document []byte
	present  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(ctx context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, false, nil
	}
	out := make([]byte, len(s.document))
	copy(out, s.document)
	return out, true, nil
}

func (s *MemoryStore) Write(ctx context.Context, document []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = make([]byte, len(document))
	copy(s.document, document)
	s.present = true
	return nil
}
