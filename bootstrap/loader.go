// Package bootstrap loads the signed-in user's workspace snapshot for a page
// render and turns every failure into a defined fallback state.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/meruem/meruem-web/backend"
	"github.com/meruem/meruem-web/internal/errors"
	"github.com/meruem/meruem-web/internal/metrics"
	"github.com/meruem/meruem-web/session"
	"github.com/rs/zerolog/log"
)

type Outcome int

const (
	OK Outcome = iota
	Unauthorized
	Failed
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Unauthorized:
		return "unauthorized"
	default:
		return "failed"
	}
}

// Result is the tagged outcome of a bootstrap fetch. Data is always usable:
// on anything but OK it holds Fallback().
type Result struct {
	Data    backend.WorkspaceData
	Outcome Outcome
	Err     error
}

func (r Result) OK() bool {
	return r.Outcome == OK
}

// Fallback is the state rendered when the snapshot cannot be loaded: no
// workspaces, no user, no current workspace.
func Fallback() backend.WorkspaceData {
	return backend.WorkspaceData{Workspaces: []backend.Workspace{}}
}

type ConnectionsResult struct {
	Connections []backend.Connection
	Outcome     Outcome
	Err         error
}

type Loader struct {
	client  backend.Client
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewLoader(client backend.Client, timeout time.Duration, m *metrics.Metrics) *Loader {
	return &Loader{client: client, timeout: timeout, metrics: m}
}

// Load returns the workspace snapshot for token. Within one Pass (see
// WithPass) the backend is called once no matter how many consumers ask.
func (l *Loader) Load(ctx context.Context, token string) Result {
	p := PassFrom(ctx)
	if p == nil {
		return l.load(ctx, token)
	}
	return p.Do("workspace-data:"+session.Key(token), func() any {
		return l.load(ctx, token)
	}).(Result)
}

func (l *Loader) load(ctx context.Context, token string) Result {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	data, err := l.client.WorkspaceData(ctx, token)
	switch {
	case err != nil:
		err = fmt.Errorf("%w: %w", errors.ErrBootstrapFetchFailure, err)
	case data == nil:
		err = errors.Wrap(errors.ErrBootstrapFetchFailure, "empty workspace data")
	}
	if err != nil {
		res := Result{Data: Fallback(), Outcome: classify(err), Err: err}
		l.metrics.BootstrapOutcome(res.Outcome.String())
		log.Ctx(ctx).Warn().Err(err).Str("outcome", res.Outcome.String()).Msg("workspace bootstrap failed")
		return res
	}

	if data.Workspaces == nil {
		data.Workspaces = []backend.Workspace{}
	}
	l.metrics.BootstrapOutcome(OK.String())
	return Result{Data: *data, Outcome: OK}
}

// Connections returns the connections of one workspace, memoised per pass
// like Load.
func (l *Loader) Connections(ctx context.Context, token, workspaceID string) ConnectionsResult {
	p := PassFrom(ctx)
	if p == nil {
		return l.connections(ctx, token, workspaceID)
	}
	return p.Do("connections:"+session.Key(token)+":"+workspaceID, func() any {
		return l.connections(ctx, token, workspaceID)
	}).(ConnectionsResult)
}

func (l *Loader) connections(ctx context.Context, token, workspaceID string) ConnectionsResult {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	conns, err := l.client.Connections(ctx, token, workspaceID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("workspace_id", workspaceID).Msg("connection fetch failed")
		return ConnectionsResult{Connections: []backend.Connection{}, Outcome: classify(err), Err: err}
	}
	if conns == nil {
		conns = []backend.Connection{}
	}
	return ConnectionsResult{Connections: conns, Outcome: OK}
}

func (l *Loader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}

func classify(err error) Outcome {
	if errors.Is(err, errors.ErrUnauthorized) {
		return Unauthorized
	}
	return Failed
}
