package arbiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gridlock/model"
	"github.com/viant/gridlock/model/process"
	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/policy"
	"github.com/viant/gridlock/runtime/session"
	"github.com/viant/gridlock/service/event"
)

func newSession(totals resource.Amounts, moveLimit int, processes ...*process.Process) *session.Session {
	level := &model.Level{
		Number:    1,
		Pool:      resource.NewPool(totals),
		Processes: processes,
		MoveLimit: moveLimit,
	}
	return session.New("S1", level, 0)
}

func TestService_Allocate_CompletesLevel(t *testing.T) {
	ctx := context.Background()
	p1 := process.New("P1", "Text Editor", resource.Amounts{resource.KindCPU: 1, resource.KindMemory: 2})
	p2 := process.New("P2", "Print Job", resource.Amounts{resource.KindPrinter: 1, resource.KindMemory: 1})
	sess := newSession(resource.Amounts{
		resource.KindCPU:     2,
		resource.KindMemory:  2,
		resource.KindPrinter: 1,
	}, 20, p1, p2)
	service := New()

	require.True(t, service.Allocate(ctx, sess, "P1", resource.KindCPU, 1))
	require.True(t, service.Allocate(ctx, sess, "P1", resource.KindMemory, 2))
	assert.True(t, p1.Finished())
	// P1's grants returned to the pool
	assert.Equal(t, 2, sess.Level.Pool.Available(resource.KindMemory))
	assert.Equal(t, 2, sess.Level.Pool.Available(resource.KindCPU))

	require.True(t, service.Allocate(ctx, sess, "P2", resource.KindPrinter, 1))
	require.True(t, service.Allocate(ctx, sess, "P2", resource.KindMemory, 1))
	assert.True(t, p2.Finished())

	assert.Equal(t, session.StateCompleted, sess.GetState())
	assert.NotNil(t, sess.FinishedAt)
	assert.Equal(t, 4, sess.Level.Moves)
	messages := sess.Journal().Messages()
	assert.Contains(t, messages, "Allocated 1 cpu to P1")
	assert.Contains(t, messages, "Process P1 (Text Editor) finished!")
	assert.Contains(t, messages, "Level 1 complete in 4 moves")

	// terminal session rejects further requests
	assert.False(t, service.Allocate(ctx, sess, "P2", resource.KindMemory, 1))
}

func TestService_Allocate_DeadlockDetected(t *testing.T) {
	ctx := context.Background()
	p1 := process.New("P1", "Browser", resource.Amounts{resource.KindCPU: 2, resource.KindMemory: 1})
	p2 := process.New("P2", "Streaming", resource.Amounts{resource.KindCPU: 1, resource.KindMemory: 2})
	sess := newSession(resource.Amounts{
		resource.KindCPU:    2,
		resource.KindMemory: 2,
	}, 20, p1, p2)
	service := New()

	require.True(t, service.Allocate(ctx, sess, "P1", resource.KindCPU, 1))
	require.True(t, service.Allocate(ctx, sess, "P2", resource.KindMemory, 1))
	require.True(t, service.Allocate(ctx, sess, "P1", resource.KindMemory, 1))
	assert.Equal(t, session.StateActive, sess.GetState())

	// last unit of cpu goes to P2, leaving both short with nothing free
	require.True(t, service.Allocate(ctx, sess, "P2", resource.KindCPU, 1))
	assert.Equal(t, session.StateDeadlocked, sess.GetState())
	assert.Contains(t, sess.Journal().Messages(), "Deadlock detected on level 1")

	report := service.CheckDeadlock(sess)
	assert.True(t, report.Deadlocked)
	assert.ElementsMatch(t, []string{"P1", "P2"}, report.Unresolved)
	assert.True(t, service.GameOver(sess))
}

func TestService_Allocate_MoveLimit(t *testing.T) {
	ctx := context.Background()
	p1 := process.New("P1", "Database", resource.Amounts{resource.KindCPU: 1, resource.KindMemory: 2, resource.KindDisk: 2})
	p2 := process.New("P2", "Backup", resource.Amounts{resource.KindDisk: 2, resource.KindMemory: 1})
	sess := newSession(resource.Amounts{
		resource.KindCPU:    4,
		resource.KindMemory: 4,
		resource.KindDisk:   4,
	}, 2, p1, p2)
	service := New()

	require.True(t, service.Allocate(ctx, sess, "P1", resource.KindCPU, 1))
	require.True(t, service.Allocate(ctx, sess, "P1", resource.KindMemory, 1))
	assert.Equal(t, session.StateExhausted, sess.GetState())
	assert.Contains(t, sess.Journal().Messages(), "Move limit of 2 reached on level 1")
	assert.False(t, service.Allocate(ctx, sess, "P1", resource.KindMemory, 1))
}

func TestService_Allocate_Conservation(t *testing.T) {
	ctx := context.Background()
	p1 := process.New("P1", "Compiler", resource.Amounts{resource.KindCPU: 2, resource.KindMemory: 1, resource.KindDisk: 1})
	p2 := process.New("P2", "Antivirus", resource.Amounts{resource.KindCPU: 1, resource.KindDisk: 1, resource.KindMemory: 1})
	sess := newSession(resource.Amounts{
		resource.KindCPU:    3,
		resource.KindMemory: 3,
		resource.KindDisk:   2,
	}, 20, p1, p2)
	service := New()

	check := func() {
		for _, kind := range resource.Kinds() {
			held := 0
			for _, proc := range sess.Level.Processes {
				held += proc.Allocated.Get(kind)
			}
			assert.Equal(t, sess.Level.Pool.Total(kind),
				sess.Level.Pool.Available(kind)+held, "kind %s", kind)
		}
	}

	check()
	service.Allocate(ctx, sess, "P1", resource.KindCPU, 2)
	check()
	service.Allocate(ctx, sess, "P2", resource.KindMemory, 1)
	check()
	service.Allocate(ctx, sess, "P1", resource.KindMemory, 1)
	check()
	service.Allocate(ctx, sess, "P1", resource.KindDisk, 1)
	check()
}

func TestService_Allocate_OverAllocation(t *testing.T) {
	newCase := func() *session.Session {
		p1 := process.New("P1", "Text Editor", resource.Amounts{resource.KindCPU: 1, resource.KindMemory: 2})
		return newSession(resource.Amounts{
			resource.KindCPU:    4,
			resource.KindMemory: 4,
		}, 20, p1)
	}
	service := New()

	// default policy rejects requests exceeding the remaining need
	sess := newCase()
	assert.False(t, service.Allocate(context.Background(), sess, "P1", resource.KindCPU, 2))
	assert.Equal(t, 0, sess.Level.Moves)
	assert.Equal(t, 4, sess.Level.Pool.Available(resource.KindCPU))

	// clamp mode trims the request down to the remaining need
	ctx := policy.WithPolicy(context.Background(), &policy.Policy{Mode: policy.ModeClamp})
	sess = newCase()
	assert.True(t, service.Allocate(ctx, sess, "P1", resource.KindCPU, 3))
	assert.Equal(t, 1, sess.Level.Process("P1").Allocated.Get(resource.KindCPU))

	// a clamped request for a fully granted kind collapses to zero
	assert.False(t, service.Allocate(ctx, sess, "P1", resource.KindCPU, 1))
}

func TestService_Allocate_PolicyKinds(t *testing.T) {
	p1 := process.New("P1", "Print Job", resource.Amounts{resource.KindPrinter: 1, resource.KindMemory: 1})
	sess := newSession(resource.Amounts{
		resource.KindPrinter: 2,
		resource.KindMemory:  2,
	}, 20, p1)
	service := New()

	ctx := policy.WithPolicy(context.Background(), &policy.Policy{
		BlockKinds: []resource.Kind{resource.KindPrinter},
	})
	assert.False(t, service.Allocate(ctx, sess, "P1", resource.KindPrinter, 1))
	assert.True(t, service.Allocate(ctx, sess, "P1", resource.KindMemory, 1))
}

func TestService_Allocate_Rejections(t *testing.T) {
	p1 := process.New("P1", "Backup", resource.Amounts{resource.KindDisk: 2, resource.KindMemory: 1})
	sess := newSession(resource.Amounts{
		resource.KindDisk:   1,
		resource.KindMemory: 1,
	}, 20, p1)
	service := New()
	ctx := context.Background()

	// unknown process
	assert.False(t, service.Allocate(ctx, sess, "P9", resource.KindDisk, 1))
	// unknown kind and non-positive amounts
	assert.False(t, service.Allocate(ctx, sess, "P1", resource.Kind("gpu"), 1))
	assert.False(t, service.Allocate(ctx, sess, "P1", resource.KindDisk, 0))
	assert.False(t, service.Allocate(ctx, sess, "P1", resource.KindDisk, -1))
	// insufficient pool capacity
	assert.False(t, service.Allocate(ctx, sess, "P1", resource.KindDisk, 2))
	assert.Equal(t, 0, sess.Level.Moves)
	assert.Empty(t, sess.Journal().Messages())
	// nil session
	assert.False(t, service.Allocate(ctx, nil, "P1", resource.KindDisk, 1))
	assert.True(t, service.GameOver(nil))
}

func TestService_CheckDeadlock_ReadOnly(t *testing.T) {
	p1 := process.New("P1", "Browser", resource.Amounts{resource.KindCPU: 2, resource.KindMemory: 3})
	sess := newSession(resource.Amounts{
		resource.KindCPU:    2,
		resource.KindMemory: 3,
	}, 20, p1)
	service := New()

	first := service.CheckDeadlock(sess)
	second := service.CheckDeadlock(sess)
	assert.Equal(t, first, second)
	assert.False(t, first.Deadlocked)
	assert.Equal(t, 0, sess.Level.Moves)
	assert.Empty(t, sess.Journal().Messages())
	assert.Equal(t, session.StateActive, sess.GetState())
}

func TestService_Allocate_PublishesEvents(t *testing.T) {
	events, err := event.New()
	require.NoError(t, err)
	ctx := session.NewContext(context.Background(), nil, events)

	p1 := process.New("P1", "Print Job", resource.Amounts{resource.KindPrinter: 1})
	sess := newSession(resource.Amounts{resource.KindPrinter: 1}, 20, p1)
	service := New()

	require.True(t, service.Allocate(ctx, sess, "P1", resource.KindPrinter, 1))

	consumeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	allocations, err := event.PublisherOf[Allocation](events)
	require.NoError(t, err)
	allocated, err := allocations.Consume(consumeCtx)
	require.NoError(t, err)
	assert.Equal(t, "P1", allocated.Data.ProcessID)
	assert.Equal(t, resource.KindPrinter, allocated.Data.Kind)
	assert.Equal(t, EventTypeAllocation, allocated.Context.EventType)

	completions, err := event.PublisherOf[Completion](events)
	require.NoError(t, err)
	completed, err := completions.Consume(consumeCtx)
	require.NoError(t, err)
	assert.Equal(t, "Print Job", completed.Data.Name)

	outcomes, err := event.PublisherOf[Outcome](events)
	require.NoError(t, err)
	outcome, err := outcomes.Consume(consumeCtx)
	require.NoError(t, err)
	assert.Equal(t, session.StateCompleted, outcome.Data.State)
	assert.Equal(t, 1, outcome.Data.Moves)
}
