// Package lock keeps trading cycles from overlapping, within one process or
// across replicas sharing a Redis instance.
package lock

import "context"

type Locker interface {
	// TryLock reports whether the lock was acquired. It never blocks waiting
	// for a holder to release.
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}
