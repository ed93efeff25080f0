package session

import (
	"context"
	"reflect"

	"github.com/viant/gridlock/extension"
	"github.com/viant/gridlock/service/event"
)

// Context carries a session together with the command registry and event
// service so downstream services can reach them without extra plumbing.
type Context struct {
	session *Session
	actions *extension.Actions
	events  *event.Service
	context.Context
}

var SessionKey = KeyOf[*Session]()
var actionsKey = KeyOf[*extension.Actions]()
var EventKey = KeyOf[*event.Service]()
var ContextKey = KeyOf[*Context]()

// SessionContext returns a context scoped to the provided session.
func (c *Context) SessionContext(sess *Session) *Context {
	clone := *c
	clone.session = sess
	return &clone
}

func (c *Context) Value(key any) any {
	switch key {
	case SessionKey:
		return c.session
	case actionsKey:
		return c.actions
	case EventKey:
		return c.events
	case ContextKey:
		return c
	}
	return c.Context.Value(key)
}

// ContextValue returns the value of the provided type from the context
func ContextValue[T any](ctx context.Context) T {
	key := KeyOf[T]()
	if value := ctx.Value(key); value != nil {
		return value.(T)
	}
	var t T
	return t
}

// KeyOf returns the reflect.Type of the provided type
func KeyOf[T any]() reflect.Type {
	var a T
	return reflect.TypeOf(a)
}

func NewContext(ctx context.Context, actions *extension.Actions, events *event.Service) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Context: ctx,
		actions: actions,
		events:  events,
	}
}
