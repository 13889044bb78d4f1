package sigs

import (
	"context"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/x"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx context.Context, signers []lockbox.Condition) context.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reports the conditions of the verified signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current context. May be empty.
func (a Authenticate) GetConditions(ctx context.Context) []lockbox.Condition {
	val, _ := ctx.Value(contextKeySigners).([]lockbox.Condition)
	return val
}

// HasAddress returns true if the address signed the current context.
func (a Authenticate) HasAddress(ctx context.Context, addr lockbox.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
