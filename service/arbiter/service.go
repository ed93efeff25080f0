package arbiter

import (
	"context"
	"fmt"

	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/policy"
	"github.com/viant/gridlock/runtime/session"
	"github.com/viant/gridlock/service/detector"
	"github.com/viant/gridlock/service/event"
	"github.com/viant/gridlock/tracing"
)

// Service arbitrates resource requests for active sessions.
type Service struct {
	detector *detector.Service
}

// New creates an arbiter service.
func New(opts ...Option) *Service {
	ret := &Service{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.detector == nil {
		ret.detector = detector.New()
	}
	return ret
}

// Allocate grants amount units of kind to the identified process. The grant
// is all-or-nothing: it succeeds only when the session is active, the
// process still needs the kind, the policy admits it and the pool has the
// capacity. A successful grant consumes one move; a process that becomes
// fully satisfied finishes immediately and returns its holdings to the
// pool. Afterwards the session's terminal state is evaluated.
func (s *Service) Allocate(ctx context.Context, sess *session.Session, processID string, kind resource.Kind, amount int) bool {
	ctx, span := tracing.StartSpan(ctx, "arbiter.allocate")
	granted := false
	defer func() {
		span.WithAttributes(map[string]string{
			"process": processID,
			"kind":    string(kind),
			"granted": fmt.Sprintf("%t", granted),
		})
		tracing.EndSpan(span, nil)
	}()

	if sess == nil || sess.Level == nil || !sess.Active() {
		return false
	}
	if !kind.Valid() || amount <= 0 {
		return false
	}
	proc := sess.Level.Process(processID)
	if proc == nil || proc.Finished() {
		return false
	}

	rules := policy.FromContext(ctx)
	if !rules.IsAllowed(kind) {
		return false
	}
	if remaining := proc.Remaining(kind); amount > remaining {
		if !rules.Clamps() {
			return false
		}
		amount = remaining
	}
	if amount == 0 {
		return false
	}
	if !sess.Level.Pool.Allocate(kind, amount) {
		return false
	}

	proc.Grant(kind, amount)
	sess.Level.Moves++
	sess.Journal().Appendf("Allocated %d %s to %s", amount, kind, processID)
	granted = true
	s.publish(ctx, sess, &event.Context{
		SessionID: sess.ID,
		ProcessID: processID,
		EventType: EventTypeAllocation,
	}, Allocation{
		SessionID: sess.ID,
		ProcessID: processID,
		Kind:      kind,
		Amount:    amount,
		Move:      sess.Level.Moves,
	})

	if proc.Satisfied() {
		s.finish(ctx, sess, processID)
	}
	s.evaluate(ctx, sess)
	sess.Touch()
	return true
}

// finish retires a satisfied process and returns its holdings to the pool.
func (s *Service) finish(ctx context.Context, sess *session.Session, processID string) {
	proc := sess.Level.Process(processID)
	released := proc.Finish()
	if released == nil {
		return
	}
	for kind, amount := range released {
		sess.Level.Pool.Release(kind, amount)
	}
	sess.Journal().Appendf("Process %s (%s) finished!", proc.ID, proc.Name)
	s.publish(ctx, sess, &event.Context{
		SessionID: sess.ID,
		ProcessID: proc.ID,
		EventType: EventTypeCompletion,
	}, Completion{
		SessionID: sess.ID,
		ProcessID: proc.ID,
		Name:      proc.Name,
	})
}

// evaluate transitions the session to a terminal state when warranted.
// Completion wins over deadlock, deadlock over move exhaustion.
func (s *Service) evaluate(ctx context.Context, sess *session.Session) {
	if !sess.Active() {
		return
	}
	var state string
	switch {
	case sess.Level.Complete():
		state = session.StateCompleted
		sess.Journal().Appendf("Level %d complete in %d moves", sess.Level.Number, sess.Level.Moves)
	case s.detector.Detect(sess.Level).Deadlocked:
		state = session.StateDeadlocked
		sess.Journal().Appendf("Deadlock detected on level %d", sess.Level.Number)
	case sess.Level.MovesExhausted():
		state = session.StateExhausted
		sess.Journal().Appendf("Move limit of %d reached on level %d", sess.Level.MoveLimit, sess.Level.Number)
	default:
		return
	}
	sess.SetState(state)
	s.publish(ctx, sess, &event.Context{
		SessionID: sess.ID,
		EventType: EventTypeOutcome,
	}, Outcome{
		SessionID: sess.ID,
		State:     state,
		Moves:     sess.Level.Moves,
	})
}

// CheckDeadlock runs a detection pass without mutating the session, so
// repeated queries always agree.
func (s *Service) CheckDeadlock(sess *session.Session) detector.Report {
	if sess == nil || sess.Level == nil {
		return detector.Report{}
	}
	return s.detector.Detect(sess.Level)
}

// GameOver reports whether the session can accept further allocations.
func (s *Service) GameOver(sess *session.Session) bool {
	if sess == nil {
		return true
	}
	return !sess.Active()
}

func publishOf[T any](ctx context.Context, events *event.Service, eventContext *event.Context, payload T) {
	publisher, err := event.PublisherOf[T](events)
	if err != nil {
		return
	}
	_ = publisher.Publish(ctx, event.NewEvent(eventContext, payload))
}

func (s *Service) publish(ctx context.Context, sess *session.Session, eventContext *event.Context, payload any) {
	value := ctx.Value(session.EventKey)
	if value == nil {
		return
	}
	events, ok := value.(*event.Service)
	if !ok || events == nil {
		return
	}
	switch data := payload.(type) {
	case Allocation:
		publishOf(ctx, events, eventContext, data)
	case Completion:
		publishOf(ctx, events, eventContext, data)
	case Outcome:
		publishOf(ctx, events, eventContext, data)
	}
}
