package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type memoryDoc struct {
	id   string
	body map[string]any
}

type memoryStore struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]*memoryDoc
}

// NewMemory creates a process-local store. Data is lost on exit.
func NewMemory(name string) Store {
	return &memoryStore{
		name:        name,
		collections: make(map[string][]*memoryDoc),
	}
}

func (s *memoryStore) Driver() string { return "memory" }

func (s *memoryStore) Name() string { return s.name }

func (s *memoryStore) Ping(ctx context.Context) error { return nil }

func (s *memoryStore) Collections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memoryStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	body, err := encodeBody(doc)
	if err != nil {
		return "", err
	}

	id := NewID()

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], &memoryDoc{id: id, body: body})
	s.mu.Unlock()

	return id, nil
}

func (s *memoryStore) Find(ctx context.Context, collection string, q Query, out any) error {
	if _, err := parseIDs(q.IDs); err != nil {
		return err
	}

	s.mu.RLock()
	var raws [][]byte
	for _, doc := range s.collections[collection] {
		if !matches(doc, q) {
			continue
		}

		withID := make(map[string]any, len(doc.body)+1)
		for k, v := range doc.body {
			withID[k] = v
		}
		withID[idField] = doc.id

		raw, err := json.Marshal(withID)
		if err != nil {
			s.mu.RUnlock()
			return fmt.Errorf("failed to encode document: %w", err)
		}
		raws = append(raws, raw)

		if q.Limit > 0 && len(raws) >= q.Limit {
			break
		}
	}
	s.mu.RUnlock()

	return decodeBodies(raws, out)
}

func (s *memoryStore) Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	set, err := encodeBody(fields)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.lookup(collection, oid.Hex())
	if doc == nil {
		return false, nil
	}
	for k, v := range set {
		doc.body[k] = v
	}
	return true, nil
}

func (s *memoryStore) Increment(ctx context.Context, collection, id, field string, delta int) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.lookup(collection, oid.Hex())
	if doc == nil {
		return false, nil
	}

	current, _ := doc.body[field].(float64)
	doc.body[field] = current + float64(delta)
	return true, nil
}

func (s *memoryStore) Close(ctx context.Context) error { return nil }

// lookup must be called with the lock held
func (s *memoryStore) lookup(collection, id string) *memoryDoc {
	for _, doc := range s.collections[collection] {
		if doc.id == id {
			return doc
		}
	}
	return nil
}

func matches(doc *memoryDoc, q Query) bool {
	if len(q.IDs) > 0 {
		found := false
		for _, id := range q.IDs {
			if strings.EqualFold(id, doc.id) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for field, want := range q.Equals {
		got, ok := doc.body[field].(string)
		if !ok || got != want {
			return false
		}
	}

	if q.Match != nil && q.Match.Term != "" {
		term := strings.ToLower(q.Match.Term)
		hit := false
		for _, field := range q.Match.Fields {
			if v, ok := doc.body[field].(string); ok && strings.Contains(strings.ToLower(v), term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	return true
}
