// Package mutate provides the two write-path strategies used against the
// finance API.
//
// OptimisticReconcile applies the change locally before the server call and
// unconditionally refetches canonical state afterwards, so the view is
// corrected whether the call succeeded or not. ConfirmThenApply waits for the
// server to confirm before touching local state, for operations where a
// wrong local guess would be misleading (delete, restore).
package mutate

import (
	"context"
	"errors"
	"fmt"
)

// OptimisticOp names the hooks of an optimistic mutation. Optimistic and
// Reconcile may be nil; Call must be set.
type OptimisticOp struct {
	// Optimistic applies the predicted change to local state immediately.
	Optimistic func()

	// Call performs the server mutation.
	Call func(ctx context.Context) error

	// Reconcile refetches canonical state. It runs after Call regardless of
	// the call's outcome, so a rejected mutation is rolled back by the
	// refetch rather than by an inverse patch.
	Reconcile func(ctx context.Context) error
}

// OptimisticReconcile runs op: local apply, server call, unconditional
// reconcile. The call error, if any, is returned; a reconcile failure is
// joined onto it so neither outcome is lost.
func OptimisticReconcile(ctx context.Context, op OptimisticOp) error {
	if op.Optimistic != nil {
		op.Optimistic()
	}

	callErr := op.Call(ctx)

	if op.Reconcile != nil {
		if recErr := op.Reconcile(ctx); recErr != nil {
			if callErr != nil {
				return errors.Join(callErr, fmt.Errorf("reconcile: %w", recErr))
			}
			return fmt.Errorf("reconcile: %w", recErr)
		}
	}
	return callErr
}

// ConfirmOp names the hooks of a confirm-first mutation.
type ConfirmOp struct {
	// Call performs the server mutation.
	Call func(ctx context.Context) error

	// Apply commits the change to local state once the server confirmed.
	Apply func()
}

// ConfirmThenApply runs op.Call and, only on success, op.Apply. Local state
// is untouched on failure.
func ConfirmThenApply(ctx context.Context, op ConfirmOp) error {
	if err := op.Call(ctx); err != nil {
		return err
	}
	if op.Apply != nil {
		op.Apply()
	}
	return nil
}
