package lockbox

import (
	"strings"

	"github.com/iov-one/lockbox/errors"
)

const (
	// KeyQueryMod queries a single entity by its full key.
	KeyQueryMod = ""
	// PrefixQueryMod queries all entities whose key starts with the
	// given data.
	PrefixQueryMod = "prefix"
)

// Model is a single query result.
type Model struct {
	Key   []byte
	Value []byte
}

// QueryHandler answers queries for a single path. The mod is the part of
// the path following "?", for example "prefix".
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter dispatches queries by their path.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns an empty router.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// Register adds a handler for the path. It panics if the path is taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic("query path already registered: " + path)
	}
	r.routes[path] = h
}

// Handler returns the handler and the mod for a full path such as
// "/locks?prefix".
func (r QueryRouter) Handler(path string) (QueryHandler, string, error) {
	mod := KeyQueryMod
	if i := strings.Index(path, "?"); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h, ok := r.routes[path]
	if !ok {
		return nil, "", errors.Wrapf(errors.ErrNotFound, "query path %q", path)
	}
	return h, mod, nil
}

// QueryRegister is implemented by extensions exposing queries.
type QueryRegister func(QueryRouter)
