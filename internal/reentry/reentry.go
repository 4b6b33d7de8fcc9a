// Package reentry marks a context for the duration of a mutating engine
// call. A collaborator that calls back into any mutating entry point with
// the context it was handed is rejected outright instead of deadlocking on
// the serialization mutex.
package reentry

import "context"

type callKey struct{}

// Mark tags ctx as being inside a mutating call.
func Mark(ctx context.Context) context.Context {
	return context.WithValue(ctx, callKey{}, true)
}

// InCall reports whether ctx was handed out by a mutating call in flight.
func InCall(ctx context.Context) bool {
	v, _ := ctx.Value(callKey{}).(bool)
	return v
}
