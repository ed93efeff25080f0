package memory

import (
	"context"
	"sync"

	"github.com/viant/gridlock/runtime/session"
	"github.com/viant/gridlock/service/dao"
	"github.com/viant/gridlock/service/dao/criteria"
)

// Service implements an in-memory, thread-safe store for sessions. Sessions
// live only for the duration of the run; the simulation keeps no state
// across restarts.
type Service struct {
	sessions map[string]*session.Session
	mux      sync.RWMutex
}

var _ dao.Service[string, session.Session] = (*Service)(nil)

func (s *Service) Save(_ context.Context, sess *session.Session) error {
	if sess == nil {
		return dao.ErrNilEntity
	}
	if sess.ID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if existing, ok := s.sessions[sess.ID]; ok && existing != sess {
		existing.CopyFrom(sess)
	} else {
		s.sessions[sess.ID] = sess
	}
	return nil
}

func (s *Service) Load(_ context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	sess, ok := s.sessions[id]
	s.mux.RUnlock()

	if !ok {
		return nil, dao.ErrNotFound
	}
	return sess, nil
}

func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*session.Session, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if !criteria.FilterByState(sess.GetState(), parameters) {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

func New() *Service {
	return &Service{sessions: map[string]*session.Session{}}
}
