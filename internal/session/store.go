// Package session holds the per-browser session store and the registry of live stores.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/model"
)

// ProfileFetcher refreshes the parent profile for a bearer token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, creds model.Credentials) (model.ParentUser, error)
}

// Option configures a Store.
type Option func(*Store)

// WithDualIdentity lets a parent and a student stay logged in side by side.
// By default logging in as one identity logs the other out.
func WithDualIdentity(allow bool) Option {
	return func(s *Store) {
		s.allowDual = allow
	}
}

// Store is the single source of truth for who is using one browser.
// Every mutation is written through to the key-value tier.
type Store struct {
	kv       model.KeyValueStore
	profiles ProfileFetcher
	logger   *logger.Logger

	allowDual bool

	mu         sync.RWMutex
	user       *model.ParentUser
	student    *model.Student
	token      string
	loading    bool
	generation uint64
	closed     bool

	ctx      context.Context
	cancel   context.CancelFunc
	ready    chan struct{}
	initOnce sync.Once
}

// NewStore creates a Store in the loading state. Call Initialize to rehydrate it.
func NewStore(kv model.KeyValueStore, profiles ProfileFetcher, logger *logger.Logger, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		kv:       kv,
		profiles: profiles,
		logger:   logger,
		loading:  true,
		ctx:      ctx,
		cancel:   cancel,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores persisted identities and, when a token exists, starts
// an asynchronous profile refresh. It runs once; later calls are no-ops.
// Failures are logged and leave the affected identity absent.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.initialize(ctx)
	})
}

func (s *Store) initialize(ctx context.Context) {
	user := readRecord[model.ParentUser](ctx, s.kv, model.KeyUser, s.logger)
	student := readRecord[model.Student](ctx, s.kv, model.KeyStudent, s.logger)
	token := s.readToken(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.user = user
	s.student = student
	s.token = token
	gen := s.generation

	if token == "" {
		s.finishLoadingLocked()
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	go s.refreshProfile(gen, model.Credentials{Token: token, User: user})
}

func (s *Store) refreshProfile(gen uint64, creds model.Credentials) {
	profile, err := s.profiles.FetchProfile(s.ctx, creds)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Torn down while the fetch was in flight: drop the result entirely.
	if s.closed {
		return
	}
	defer s.finishLoadingLocked()

	if s.generation != gen {
		s.logger.Debug("Session: discarding stale profile result")
		return
	}

	if err != nil {
		s.logger.Warn("Session: profile refresh failed, clearing parent session",
			"error", err.Error(),
			"unauthorized", errors.Is(err, model.ErrUnauthorized))
		s.user = nil
		s.token = ""
		if rmErr := s.kv.Remove(s.ctx, model.KeyToken, model.KeyUser); rmErr != nil {
			s.logger.Error("Session: failed to remove parent session",
				"error", rmErr.Error())
		}
		return
	}

	if err := writeRecord(s.ctx, s.kv, model.KeyUser, profile); err != nil {
		s.logger.Error("Session: failed to persist refreshed profile",
			"error", err.Error())
		return
	}
	s.user = &profile
}

func (s *Store) finishLoadingLocked() {
	if s.loading {
		s.loading = false
		close(s.ready)
	}
}

// ErrClosed is returned by mutations on a store that has been unmounted.
// The browser's next request gets the live store instead.
var ErrClosed = errors.New("session store is closed")

// Login stores the parent user and token. Unless dual identity is enabled it
// also logs out any student.
func (s *Store) Login(ctx context.Context, user model.ParentUser, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	writes := []write{
		setKey(model.KeyToken, token),
		setKey(model.KeyUser, string(raw)),
	}
	if !s.allowDual {
		writes = append(writes, removeKeys(model.KeyStudent))
	}
	if err := s.applyLocked(ctx, writes); err != nil {
		return err
	}

	s.logger.Info("Session: parent logged in", "user_id", user.ID)
	return nil
}

// LoginStudent stores the student. Unless dual identity is enabled it also
// logs out any parent.
func (s *Store) LoginStudent(ctx context.Context, student model.Student) error {
	raw, err := json.Marshal(student)
	if err != nil {
		return fmt.Errorf("failed to marshal student: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	writes := []write{setKey(model.KeyStudent, string(raw))}
	if !s.allowDual {
		writes = append(writes, removeKeys(model.KeyToken, model.KeyUser))
	}
	if err := s.applyLocked(ctx, writes); err != nil {
		return err
	}

	s.logger.Info("Session: student logged in", "student_id", student.ID)
	return nil
}

// Logout clears both identities and the token. Memory is cleared even when
// the persisted removal fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.user = nil
	s.student = nil
	s.token = ""
	s.generation++

	if err := s.kv.Remove(ctx, model.KeyToken, model.KeyUser, model.KeyStudent); err != nil {
		s.logger.Error("Session: failed to remove persisted session",
			"error", err.Error())
		return fmt.Errorf("failed to remove persisted session: %w", err)
	}

	s.logger.Info("Session: logged out")
	return nil
}

// write is one persisted mutation: a Set of value, or a Remove of keys when
// value is nil.
type write struct {
	keys  []string
	value *string
}

func setKey(key, value string) write {
	return write{keys: []string{key}, value: &value}
}

func removeKeys(keys ...string) write {
	return write{keys: keys}
}

// applyLocked persists writes in order and then mirrors them in memory. When
// a write fails the ones before it are undone; a key whose undo also fails
// keeps the new value in memory too, so memory always matches storage.
func (s *Store) applyLocked(ctx context.Context, writes []write) error {
	prev := make(map[string]*string)
	for _, w := range writes {
		for _, key := range w.keys {
			prev[key] = s.memoryValueLocked(key)
		}
	}

	for i, w := range writes {
		if err := s.persist(ctx, w); err != nil {
			s.rollbackLocked(ctx, writes[:i], prev)
			return err
		}
	}

	for _, w := range writes {
		for _, key := range w.keys {
			s.setMemoryLocked(key, w.value)
		}
	}
	s.generation++
	return nil
}

func (s *Store) rollbackLocked(ctx context.Context, applied []write, prev map[string]*string) {
	diverged := false
	for i := len(applied) - 1; i >= 0; i-- {
		w := applied[i]
		for _, key := range w.keys {
			undo := write{keys: []string{key}, value: prev[key]}
			if err := s.persist(ctx, undo); err != nil {
				s.logger.Error("Session: failed to undo partial write",
					"key", key,
					"error", err.Error())
				s.setMemoryLocked(key, w.value)
				diverged = true
			}
		}
	}
	if diverged {
		s.generation++
	}
}

func (s *Store) persist(ctx context.Context, w write) error {
	if w.value == nil {
		if err := s.kv.Remove(ctx, w.keys...); err != nil {
			return fmt.Errorf("failed to remove %s: %w", strings.Join(w.keys, ", "), err)
		}
		return nil
	}
	if err := s.kv.Set(ctx, w.keys[0], *w.value); err != nil {
		return fmt.Errorf("failed to persist %s: %w", w.keys[0], err)
	}
	return nil
}

// memoryValueLocked is the persisted form of what memory holds for key, or
// nil when memory holds nothing.
func (s *Store) memoryValueLocked(key string) *string {
	var v any
	switch key {
	case model.KeyToken:
		if s.token == "" {
			return nil
		}
		token := s.token
		return &token
	case model.KeyUser:
		if s.user == nil {
			return nil
		}
		v = s.user
	case model.KeyStudent:
		if s.student == nil {
			return nil
		}
		v = s.student
	default:
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	str := string(raw)
	return &str
}

func (s *Store) setMemoryLocked(key string, value *string) {
	switch key {
	case model.KeyToken:
		s.token = ""
		if value != nil {
			s.token = *value
		}
	case model.KeyUser:
		s.user = decodeRecord[model.ParentUser](value)
	case model.KeyStudent:
		s.student = decodeRecord[model.Student](value)
	}
}

func decodeRecord[T any](value *string) *T {
	if value == nil {
		return nil
	}
	var v *T
	if err := json.Unmarshal([]byte(*value), &v); err != nil {
		return nil
	}
	return v
}

// State returns a snapshot safe to use after the store changes.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{Loading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	if s.student != nil {
		v := *s.student
		st.Student = &v
	}
	return st
}

// Credentials returns what backend calls made on behalf of this browser carry.
func (s *Store) Credentials() model.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds := model.Credentials{Token: s.token}
	if s.user != nil {
		u := *s.user
		creds.User = &u
	}
	return creds
}

// Ready is closed once loading finishes.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Close tears the store down. An in-flight profile refresh is cancelled and
// its result discarded. Persisted state is left as is.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *Store) readToken(ctx context.Context) string {
	token, err := s.kv.Get(ctx, model.KeyToken)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Session: failed to read token", "error", err.Error())
		}
		return ""
	}
	return token
}

func readRecord[T any](ctx context.Context, kv model.KeyValueStore, key string, logger *logger.Logger) *T {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Session: failed to read persisted record",
				"key", key,
				"error", err.Error())
		}
		return nil
	}

	// A literal "null" decodes to nil and counts as absent.
	var v *T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.Error("Session: failed to parse persisted record",
			"key", key,
			"error", err.Error())
		return nil
	}
	return v
}

func writeRecord(ctx context.Context, kv model.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(raw))
}
