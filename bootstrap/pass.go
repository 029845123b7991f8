package bootstrap

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Pass memoises values for the lifetime of one render pass (one request).
// The first caller for a key runs the fetch; concurrent callers share its
// in-flight result and later callers get the stored one.
type Pass struct {
	ID string

	group   singleflight.Group
	mu      sync.Mutex
	results map[string]any
}

func NewPass() *Pass {
	return &Pass{
		ID:      uuid.New().String(),
		results: make(map[string]any),
	}
}

func (p *Pass) lookup(key string) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.results[key]
	return v, ok
}

// Do returns the memoised value for key, calling fn at most once per pass.
func (p *Pass) Do(key string, fn func() any) any {
	if v, ok := p.lookup(key); ok {
		return v
	}
	v, _, _ := p.group.Do(key, func() (any, error) {
		// a flight for key may have landed between lookup and Do
		if v, ok := p.lookup(key); ok {
			return v, nil
		}
		v := fn()
		p.mu.Lock()
		p.results[key] = v
		p.mu.Unlock()
		return v, nil
	})
	return v
}

type passKey struct{}

// WithPass attaches p to ctx.
func WithPass(ctx context.Context, p *Pass) context.Context {
	return context.WithValue(ctx, passKey{}, p)
}

// PassFrom returns the pass attached to ctx, or nil.
func PassFrom(ctx context.Context) *Pass {
	p, _ := ctx.Value(passKey{}).(*Pass)
	return p
}
