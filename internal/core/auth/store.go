package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/docgrid/internal/core/kv"
)

const (
	namespace = "auth"
	tokenKey  = "token"
)

// Credential is the persisted login result.
type Credential struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Store persists the credential in the KV store so later invocations reuse
// the session. Store is a TokenSource.
type Store struct {
	kv *kv.TypedKV[Credential]
}

var _ TokenSource = (*Store)(nil)

// NewStore creates a credential store on top of store.
func NewStore(store kv.KV) *Store {
	return &Store{kv: kv.Scoped[Credential](store, namespace)}
}

// Save stores a credential, replacing any previous one.
func (s *Store) Save(ctx context.Context, c Credential) error {
	if c.Token == "" {
		return fmt.Errorf("save credential: empty token")
	}
	if c.IssuedAt.IsZero() {
		c.IssuedAt = time.Now()
	}
	if err := s.kv.Set(ctx, tokenKey, c); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Load returns the stored credential or ErrUnauthenticated.
func (s *Store) Load(ctx context.Context) (Credential, error) {
	c, ok, err := s.kv.Lookup(ctx, tokenKey)
	if err != nil {
		return Credential{}, fmt.Errorf("load credential: %w", err)
	}
	if !ok || c.Token == "" {
		return Credential{}, ErrUnauthenticated
	}
	return c, nil
}

// Token implements TokenSource. Storage errors are logged and reported as a
// missing credential.
func (s *Store) Token(ctx context.Context) (string, bool) {
	c, err := s.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			log.Warn().Err(err).Msg("reading stored credential")
		}
		return "", false
	}
	return c.Token, true
}

// Clear removes the stored credential.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
