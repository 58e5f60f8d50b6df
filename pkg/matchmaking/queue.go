// Package matchmaking pairs waiting players in strict arrival order
package matchmaking

import (
	"sync"

	"go.uber.org/zap"
)

// Queue is a FIFO of players awaiting an opponent. The oldest waiting
// player is paired with the next distinct requester, which keeps pairing
// fair and starvation-free as long as requests keep arriving.
type Queue struct {
	mu      sync.Mutex
	waiting []string
	logger  *zap.Logger
}

// NewQueue creates an empty match queue
func NewQueue(logger *zap.Logger) *Queue {
	return &Queue{logger: logger}
}

// RequestMatch either pairs name with the head of the queue or enqueues it.
// The head is never paired with itself, and a name is never enqueued twice.
// paired is true when opponent holds the dequeued head.
func (q *Queue) RequestMatch(name string) (opponent string, paired bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.waiting) > 0 && q.waiting[0] != name {
		opponent = q.waiting[0]
		q.waiting = q.waiting[1:]

		q.logger.Info("players paired",
			zap.String("requester", name),
			zap.String("opponent", opponent))

		return opponent, true
	}

	for _, w := range q.waiting {
		if w == name {
			return "", false
		}
	}
	q.waiting = append(q.waiting, name)

	q.logger.Info("player waiting for opponent", zap.String("player", name))

	return "", false
}

// RemoveIfWaiting drops a stale queue entry on disconnect. No-op if absent.
func (q *Queue) RemoveIfWaiting(name string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, w := range q.waiting {
		if w == name {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return
		}
	}
}

// Len returns the number of players currently waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
