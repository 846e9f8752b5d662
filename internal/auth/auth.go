package auth

import (
	"context"
	"errors"
)

type ctxKey string

const ContextActorKey ctxKey = "actor"

var ErrForbidden = errors.New("forbidden")

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	a, ok := ctx.Value(ContextActorKey).(*Actor)
	return a, ok
}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}
