package competitionservice

import (
	"context"
	"sync"
)

// writeQueue admits one holder at a time in strict arrival order. A waiter
// whose context ends leaves the queue without ever holding it.
type writeQueue struct {
	mu      sync.Mutex
	waiters []chan struct{}
}

// acquire blocks until every earlier caller has released.
func (q *writeQueue) acquire(ctx context.Context) error {
	ticket := make(chan struct{})

	q.mu.Lock()
	q.waiters = append(q.waiters, ticket)
	if len(q.waiters) == 1 {
		close(ticket)
	}
	q.mu.Unlock()

	select {
	case <-ticket:
		return nil
	case <-ctx.Done():
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	select {
	case <-ticket:
		// Turn arrived while giving up; pass it on.
		q.advanceLocked()
	default:
		for i, w := range q.waiters {
			if w == ticket {
				q.waiters = append(q.waiters[:i], q.waiters[i+1:]...)
				break
			}
		}
	}
	return ctx.Err()
}

// release hands the queue to the next waiter.
func (q *writeQueue) release() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.advanceLocked()
}

func (q *writeQueue) advanceLocked() {
	if len(q.waiters) == 0 {
		return
	}
	q.waiters = q.waiters[1:]
	if len(q.waiters) > 0 {
		close(q.waiters[0])
	}
}
