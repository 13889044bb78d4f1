/*
Package x holds the extensions of the lockbox application together with
the interfaces they share.
*/
package x

import (
	"context"

	"github.com/iov-one/lockbox"
)

// Authenticator reveals who authorized the current request. Handlers take
// it as a constructor argument, so that the authentication method can be
// replaced without touching them.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the request.
	GetConditions(ctx context.Context) []lockbox.Condition

	// HasAddress returns true if any fulfilled condition matches the
	// address.
	HasAddress(ctx context.Context, addr lockbox.Address) bool
}

// ChainAuth merges the result of many authenticators.
func ChainAuth(impls ...Authenticator) Authenticator {
	return multiAuth(impls)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx context.Context) []lockbox.Condition {
	var res []lockbox.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m multiAuth) HasAddress(ctx context.Context, addr lockbox.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx context.Context, auth Authenticator) lockbox.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx context.Context, auth Authenticator) []lockbox.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]lockbox.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// HasAllAddresses returns true if every address is authorized.
func HasAllAddresses(ctx context.Context, auth Authenticator, required []lockbox.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
