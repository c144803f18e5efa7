// Package auth holds the session credential used by the document API client.
package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when an operation needs a credential and
// none is available.
var ErrUnauthenticated = errors.New("not authenticated")

// TokenSource supplies the current session token. ok is false when no
// credential is available.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool)
}

// Static is a TokenSource that always returns the same token. An empty
// Static reports no credential.
type Static string

// Token implements TokenSource.
func (s Static) Token(context.Context) (string, bool) {
	return string(s), s != ""
}

// TokenFunc adapts a function to a TokenSource.
type TokenFunc func(ctx context.Context) (string, bool)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, bool) {
	return f(ctx)
}

// First returns a TokenSource that asks each source in order and returns the
// first token found.
func First(sources ...TokenSource) TokenSource {
	return TokenFunc(func(ctx context.Context) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if tok, ok := src.Token(ctx); ok {
				return tok, true
			}
		}
		return "", false
	})
}
