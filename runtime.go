package gridlock

import (
	"context"
	"fmt"

	"github.com/viant/gridlock/extension"
	"github.com/viant/gridlock/internal/idgen"
	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/runtime/session"
	"github.com/viant/gridlock/service/arbiter"
	"github.com/viant/gridlock/service/dao"
	"github.com/viant/gridlock/service/dao/catalog"
	"github.com/viant/gridlock/service/detector"
	"github.com/viant/gridlock/service/event"
	"github.com/viant/gridlock/service/generator"
	"github.com/viant/gridlock/tracing"
)

// Runtime drives game sessions. All mutations funnel through the arbiter so
// invariants (pool conservation, move accounting, terminal states) hold no
// matter which surface issues the command.
type Runtime struct {
	config     *Config
	generator  *generator.Service
	detector   *detector.Service
	arbiter    *arbiter.Service
	catalogDAO *catalog.Service
	catalogURL string
	sessionDAO dao.Service[string, session.Session]
	events     *event.Service
	actions    *extension.Actions
}

// NewContext returns a context carrying the command registry and event
// service so downstream services can publish without extra plumbing.
func (r *Runtime) NewContext(ctx context.Context) *session.Context {
	return session.NewContext(ctx, r.actions, r.events)
}

// StartLevel generates the level with the supplied number and opens a fresh
// session for it.
func (r *Runtime) StartLevel(ctx context.Context, number int) (*session.Session, error) {
	ctx, span := tracing.StartSpan(ctx, "runtime.startLevel")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	generated, err := r.generator.Generate(ctx, number)
	if err != nil {
		return nil, err
	}
	sess := session.New(idgen.New(), generated, r.config.Journal.Limit)
	sess.Journal().Appendf("Level %d started with %d processes", number, len(generated.Processes))
	if err = r.sessionDAO.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Session returns the session with the supplied ID.
func (r *Runtime) Session(ctx context.Context, id string) (*session.Session, error) {
	return r.sessionDAO.Load(ctx, id)
}

// Sessions lists sessions, optionally filtered by lifecycle state.
func (r *Runtime) Sessions(ctx context.Context, parameters ...*dao.Parameter) ([]*session.Session, error) {
	return r.sessionDAO.List(ctx, parameters...)
}

// Allocate grants amount units of kind to the identified process within a
// session. It reports whether the grant was made; errors are reserved for
// unknown sessions and storage failures.
func (r *Runtime) Allocate(ctx context.Context, sessionID, processID string, kind resource.Kind, amount int) (bool, error) {
	sess, err := r.sessionDAO.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	granted := r.arbiter.Allocate(r.NewContext(ctx), sess, processID, kind, amount)
	if granted {
		if err = r.sessionDAO.Save(ctx, sess); err != nil {
			return granted, err
		}
	}
	return granted, nil
}

// CheckDeadlock runs a read-only detection pass over a session's level.
func (r *Runtime) CheckDeadlock(ctx context.Context, sessionID string) (detector.Report, error) {
	ctx, span := tracing.StartSpan(ctx, "runtime.checkDeadlock")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	sess, err := r.sessionDAO.Load(ctx, sessionID)
	if err != nil {
		return detector.Report{}, err
	}
	return r.arbiter.CheckDeadlock(sess), nil
}

// GameOver reports whether a session stopped accepting allocations.
func (r *Runtime) GameOver(ctx context.Context, sessionID string) (bool, error) {
	sess, err := r.sessionDAO.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return r.arbiter.GameOver(sess), nil
}

// RestartLevel abandons a session and opens a new one on the same level
// number with a freshly generated layout.
func (r *Runtime) RestartLevel(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := r.sessionDAO.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	number := sess.Level.Number
	if err = r.sessionDAO.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	replacement, err := r.StartLevel(ctx, number)
	if err != nil {
		return nil, err
	}
	replacement.Journal().Appendf("Level %d restarted", number)
	return replacement, nil
}

// NextLevel advances a completed session to the following level. Sessions
// in any other state cannot advance.
func (r *Runtime) NextLevel(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := r.sessionDAO.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state := sess.GetState(); state != session.StateCompleted {
		return nil, fmt.Errorf("cannot advance session %s in state %q", sessionID, state)
	}
	return r.StartLevel(ctx, sess.Level.Number+1)
}

// RefreshCatalog re-reads the template catalog from the configured URL,
// affecting levels generated afterwards.
func (r *Runtime) RefreshCatalog(ctx context.Context) error {
	if r.catalogURL == "" {
		return fmt.Errorf("no catalog URL configured")
	}
	_, err := r.catalogDAO.Refresh(ctx, r.catalogURL)
	return err
}
