package bot

import (
	"sync"

	"github.com/milk9111/stationfall/world"
)

// commandQueue is a mutex-guarded FIFO of pending commands. Producers may
// enqueue from any goroutine; the owning bot drains it at the top of its
// tick.
type commandQueue struct {
	mu    sync.Mutex
	items []world.Command
}

func (q *commandQueue) push(cmd world.Command) {
	if cmd == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
}

func (q *commandQueue) drain() []world.Command {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}
