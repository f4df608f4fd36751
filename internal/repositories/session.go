package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
)

// SessionRedisRepository keeps dialog sessions in Redis as JSON documents.
type SessionRedisRepository struct {
	client *redis.Client
	exp    time.Duration // zero keeps sessions until they are deleted
}

// NewSessionRedisRepository creates a repository; expiration 0 disables expiry.
func NewSessionRedisRepository(client *redis.Client, expiration time.Duration) *SessionRedisRepository {
	return &SessionRedisRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

// Get returns the chat's session, or nil when the chat has no active dialog.
func (r *SessionRedisRepository) Get(ctx context.Context, chatID int64) (*models.Session, error) {
	key := sessionKey(chatID)

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Log.Debugw("session get", "key", key, "result", nil)
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("session get", "key", key, "error", err)
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		logger.Log.Errorw("session decode", "key", key, "value", val, "error", err)
		return nil, err
	}

	logger.Log.Debugw("session get", "key", key, "dialog", s.Dialog, "state", s.State)
	return &s, nil
}

// Save replaces the chat's session.
func (r *SessionRedisRepository) Save(ctx context.Context, chatID int64, s *models.Session) error {
	key := sessionKey(chatID)

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()
	logger.Log.Debugw("session save", "key", key, "dialog", s.Dialog, "state", s.State, "error", err)
	return err
}

// Delete removes the chat's session. Deleting a missing session is not an error.
func (r *SessionRedisRepository) Delete(ctx context.Context, chatID int64) error {
	key := sessionKey(chatID)
	err := r.client.Del(ctx, key).Err()
	logger.Log.Debugw("session delete", "key", key, "error", err)
	return err
}

// SessionMemoryRepository keeps dialog sessions in process memory; they are lost on restart.
type SessionMemoryRepository struct {
	mu       sync.Mutex
	sessions map[int64]models.Session
}

// NewSessionMemoryRepository creates an empty in-memory session store.
func NewSessionMemoryRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{sessions: make(map[int64]models.Session)}
}

// Get returns a copy of the chat's session, or nil when there is none.
func (r *SessionMemoryRepository) Get(_ context.Context, chatID int64) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[chatID]
	if !ok {
		return nil, nil
	}
	return copySession(s), nil
}

// Save replaces the chat's session with a copy of s.
func (r *SessionMemoryRepository) Save(_ context.Context, chatID int64, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[chatID] = *copySession(*s)
	return nil
}

// Delete removes the chat's session.
func (r *SessionMemoryRepository) Delete(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, chatID)
	return nil
}

func copySession(s models.Session) *models.Session {
	if s.CreateAccount != nil {
		d := *s.CreateAccount
		s.CreateAccount = &d
	}
	if s.AddTransaction != nil {
		d := *s.AddTransaction
		s.AddTransaction = &d
	}
	return &s
}
