package grid

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docgrid/internal/core/notify"
)

// maxPendingStatus bounds the queue while the program is busy; the status
// line only ever shows the newest entry anyway.
const maxPendingStatus = 32

// statusQueue carries notifications from bus goroutines into the Update loop.
// A notification repeating the one before it (same level and message) only
// refreshes its timestamp, so a burst of identical failures from a reload
// loop shows once.
type statusQueue struct {
	mu      sync.Mutex
	pending []notify.Notification
	ready   chan struct{}
}

func newStatusQueue() *statusQueue {
	return &statusQueue{ready: make(chan struct{}, 1)}
}

func (q *statusQueue) push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	q.mu.Lock()
	if last := len(q.pending) - 1; last >= 0 &&
		q.pending[last].Level == n.Level && q.pending[last].Message == n.Message {
		q.pending[last].CreatedAt = n.CreatedAt
	} else {
		q.pending = append(q.pending, n)
		if over := len(q.pending) - maxPendingStatus; over > 0 {
			q.pending = q.pending[over:]
		}
	}
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// drain empties the queue, oldest first.
func (q *statusQueue) drain() []notify.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// wait returns a command that resolves once something has been pushed.
func (q *statusQueue) wait() tea.Cmd {
	return func() tea.Msg {
		<-q.ready
		return statusReadyMsg{}
	}
}
