package lockboxtest

import (
	"context"

	"github.com/iov-one/lockbox"
)

// Auth authenticates a fixed set of conditions. Signer is reported first,
// followed by Signers.
type Auth struct {
	Signer  lockbox.Condition
	Signers []lockbox.Condition
}

func (a *Auth) GetConditions(context.Context) []lockbox.Condition {
	var res []lockbox.Condition
	if a.Signer != nil {
		res = append(res, a.Signer)
	}
	return append(res, a.Signers...)
}

func (a *Auth) HasAddress(ctx context.Context, addr lockbox.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth authenticates conditions stored in the context, so that a
// single handler instance can serve requests of different signers.
type CtxAuth struct {
	// Key under which conditions are stored in the context.
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticating the given conditions.
func (a *CtxAuth) SetConditions(ctx context.Context, conds ...lockbox.Condition) context.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx context.Context) []lockbox.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]lockbox.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx context.Context, addr lockbox.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
