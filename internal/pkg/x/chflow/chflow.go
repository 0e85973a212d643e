// Package chflow holds context-aware channel helpers used by the sync
// pipeline: a receive or send gives up as soon as the context is done.
package chflow

import "context"

// Receive returns the next value from ch. ok is false when ctx is done first
// or ch is closed; value is then the zero value.
func Receive[T any](ctx context.Context, ch <-chan T) (value T, ok bool) {
	select {
	case <-ctx.Done():
		return value, false
	case value, ok = <-ch:
		return value, ok
	}
}

// Send delivers data on ch and reports whether it was delivered before ctx
// was done.
func Send[T any](ctx context.Context, ch chan<- T, data T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}
