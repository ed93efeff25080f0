// Package arbiter exposes the engine's session commands through the action
// registry so embedding applications can drive a game generically.
package arbiter

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/model/types"
	"github.com/viant/gridlock/runtime/session"
	"github.com/viant/gridlock/service/detector"
)

const name = "arbiter"

// Commander is the slice of the runtime the action service drives.
type Commander interface {
	StartLevel(ctx context.Context, number int) (*session.Session, error)
	Session(ctx context.Context, id string) (*session.Session, error)
	Allocate(ctx context.Context, sessionID, processID string, kind resource.Kind, amount int) (bool, error)
	CheckDeadlock(ctx context.Context, sessionID string) (detector.Report, error)
	RestartLevel(ctx context.Context, sessionID string) (*session.Session, error)
	NextLevel(ctx context.Context, sessionID string) (*session.Session, error)
}

// Service adapts a Commander to the action registry.
type Service struct {
	commander Commander
}

// StartInput requests a fresh session for the given level number.
type StartInput struct {
	Level int `json:"level"`
}

// SessionOutput carries the session produced by a command.
type SessionOutput struct {
	Session *session.Session `json:"session"`
}

// AllocateInput requests one resource grant.
type AllocateInput struct {
	SessionID string        `json:"sessionID"`
	ProcessID string        `json:"processID"`
	Kind      resource.Kind `json:"kind"`
	Amount    int           `json:"amount"`
}

// AllocateOutput reports whether the grant was made.
type AllocateOutput struct {
	Granted bool   `json:"granted"`
	State   string `json:"state"`
}

// CheckInput requests a deadlock report for a session.
type CheckInput struct {
	SessionID string `json:"sessionID"`
}

// CheckOutput carries the deadlock report.
type CheckOutput struct {
	Report detector.Report `json:"report"`
}

// New creates an arbiter action service backed by the supplied commander.
func New(commander Commander) *Service {
	return &Service{commander: commander}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "start",
			Description: "Starts a new session for the requested level.",
			Input:       reflect.TypeOf(&StartInput{}),
			Output:      reflect.TypeOf(&SessionOutput{}),
		},
		{
			Name:        "allocate",
			Description: "Grants resource units to a process in a session.",
			Input:       reflect.TypeOf(&AllocateInput{}),
			Output:      reflect.TypeOf(&AllocateOutput{}),
		},
		{
			Name:        "check",
			Description: "Runs deadlock detection without changing state.",
			Input:       reflect.TypeOf(&CheckInput{}),
			Output:      reflect.TypeOf(&CheckOutput{}),
		},
		{
			Name:        "restart",
			Description: "Replays the session's level with a fresh layout.",
			Input:       reflect.TypeOf(&CheckInput{}),
			Output:      reflect.TypeOf(&SessionOutput{}),
		},
		{
			Name:        "next",
			Description: "Advances a completed session to the next level.",
			Input:       reflect.TypeOf(&CheckInput{}),
			Output:      reflect.TypeOf(&SessionOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "start":
		return s.start, nil
	case "allocate":
		return s.allocate, nil
	case "check":
		return s.check, nil
	case "restart":
		return s.restart, nil
	case "next":
		return s.next, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) start(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*StartInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SessionOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	sess, err := s.commander.StartLevel(ctx, input.Level)
	if err != nil {
		return err
	}
	output.Session = sess
	return nil
}

func (s *Service) allocate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*AllocateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*AllocateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	granted, err := s.commander.Allocate(ctx, input.SessionID, input.ProcessID, input.Kind, input.Amount)
	if err != nil {
		return err
	}
	output.Granted = granted
	sess, err := s.commander.Session(ctx, input.SessionID)
	if err != nil {
		return err
	}
	output.State = sess.GetState()
	return nil
}

func (s *Service) check(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CheckInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*CheckOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	report, err := s.commander.CheckDeadlock(ctx, input.SessionID)
	if err != nil {
		return err
	}
	output.Report = report
	return nil
}

func (s *Service) restart(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CheckInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SessionOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	sess, err := s.commander.RestartLevel(ctx, input.SessionID)
	if err != nil {
		return err
	}
	output.Session = sess
	return nil
}

func (s *Service) next(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CheckInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SessionOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	sess, err := s.commander.NextLevel(ctx, input.SessionID)
	if err != nil {
		return err
	}
	output.Session = sess
	return nil
}
