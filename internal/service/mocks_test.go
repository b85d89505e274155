package service

import (
	"context"
	"sync"
	"time"

	"subtrack/internal/llm"
	"subtrack/internal/models"
	"subtrack/internal/repository"

	"github.com/google/uuid"
)

type mockChatClient struct {
	mu       sync.Mutex
	calls    int
	messages []llm.Message
	reply    string
	err      error
}

func (m *mockChatClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.messages = messages
	return m.reply, m.err
}

func (m *mockChatClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockSubscriptionStore keeps subscriptions in memory, scoped by user id.
type mockSubscriptionStore struct {
	mu        sync.Mutex
	subs      map[uuid.UUID]*models.Subscription
	listCalls int
	err       error
}

func newMockSubscriptionStore(subs ...*models.Subscription) *mockSubscriptionStore {
	m := &mockSubscriptionStore{subs: make(map[uuid.UUID]*models.Subscription)}
	for _, sub := range subs {
		m.subs[sub.ID] = sub
	}
	return m
}

func (m *mockSubscriptionStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Subscription
	for _, sub := range m.subs {
		if sub.UserID == userID {
			copied := *sub
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockSubscriptionStore) Create(ctx context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	copied := *sub
	m.subs[sub.ID] = &copied
	return nil
}

func (m *mockSubscriptionStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	sub, ok := m.subs[id]
	if !ok || sub.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *mockSubscriptionStore) Update(ctx context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.subs[sub.ID]
	if !ok || existing.UserID != sub.UserID {
		return repository.ErrNotFound
	}
	copied := *sub
	m.subs[sub.ID] = &copied
	return nil
}

func (m *mockSubscriptionStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.subs[id]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.subs, id)
	return nil
}

type mockInteractionStore struct {
	mu   sync.Mutex
	rows map[string]*models.RecommendationInteraction
}

func newMockInteractionStore() *mockInteractionStore {
	return &mockInteractionStore{rows: make(map[string]*models.RecommendationInteraction)}
}

func (m *mockInteractionStore) Upsert(ctx context.Context, in *models.RecommendationInteraction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := in.UserID.String() + "/" + in.RecommendationName
	if existing, ok := m.rows[key]; ok {
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
	}
	copied := *in
	m.rows[key] = &copied
	return nil
}

func (m *mockInteractionStore) ListByUserID(ctx context.Context, userID uuid.UUID, action *models.InteractionAction) ([]*models.RecommendationInteraction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.RecommendationInteraction
	for _, in := range m.rows {
		if in.UserID != userID || (action != nil && in.Action != *action) {
			continue
		}
		copied := *in
		out = append(out, &copied)
	}
	return out, nil
}

type mockUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

type mockTokenRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMockTokenRevoker() *mockTokenRevoker {
	return &mockTokenRevoker{revoked: make(map[string]time.Duration)}
}

func (m *mockTokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = ttl
	return nil
}

func (m *mockTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}
