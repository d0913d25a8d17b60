package token

import "sync"

type mockRepository struct {
	mu     sync.Mutex
	tokens map[string]*Token
	nextID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		tokens: make(map[string]*Token),
		nextID: 1,
	}
}

func (r *mockRepository) Create(t *Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tokens[t.Value]; exists {
		return errValueTaken
	}

	t.ID = r.nextID
	r.nextID++
	r.tokens[t.Value] = t
	return nil
}

func (r *mockRepository) GetByValue(value string, kind Kind) (*Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.tokens[value]
	if !exists || t.Kind != kind {
		return nil, ErrNotFound
	}
	return t, nil
}

func (r *mockRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for value, t := range r.tokens {
		if t.ID == id {
			delete(r.tokens, value)
			return nil
		}
	}
	return nil
}

func (r *mockRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
