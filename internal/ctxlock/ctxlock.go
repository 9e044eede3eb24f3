/*
Package ctxlock runs functions while holding a lock that
is only waited for until a context is done.
*/
package ctxlock

import (
	"context"
	"sync"
)

/*
Do takes a context, a lock and a function, and calls the function
with the context while holding the lock. If the context is done
before the lock is acquired, Do returns the context's error without
calling the function, and the lock is released as soon as it is
eventually acquired.

Use the RLocker of a sync.RWMutex to run the function under a
read lock.
*/
func Do(ctx context.Context, l sync.Locker, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		l.Lock()
		select {
		case <-ctx.Done():
			l.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer l.Unlock()
	}
	return f(ctx)
}
