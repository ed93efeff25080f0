package dao

import (
	"context"
)

// Service abstracts storage of engine entities (sessions today, replays or
// scoreboards tomorrow) behind a uniform generic contract.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
