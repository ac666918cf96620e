package task

import (
	"context"
	"time"
)

// DefaultKeepalive is the idle interval after which Stream injects a
// keepalive event so downstream consumers can tell a quiet task from a
// dead connection.
const DefaultKeepalive = 30 * time.Second

// Event is one item on a progress stream: either a task snapshot or a
// keepalive marker.
type Event struct {
	Task      Task
	Keepalive bool
}

// Stream adapts a subscription queue into an event stream for an outward
// transport. Snapshots are forwarded as they arrive; when no update lands
// within the keepalive interval a keepalive event is injected instead.
// The stream ends when the context is done, the queue is closed, or a
// terminal snapshot has been forwarded. keepalive<=0 uses DefaultKeepalive.
func Stream(ctx context.Context, updates <-chan Task, keepalive time.Duration) <-chan Event {
	if keepalive <= 0 {
		keepalive = DefaultKeepalive
	}

	out := make(chan Event)
	go func() {
		defer close(out)

		timer := time.NewTimer(keepalive)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case snapshot, ok := <-updates:
				if !ok {
					return
				}
				select {
				case out <- Event{Task: snapshot}:
				case <-ctx.Done():
					return
				}
				if snapshot.Status.Terminal() {
					return
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(keepalive)

			case <-timer.C:
				select {
				case out <- Event{Keepalive: true}:
				case <-ctx.Done():
					return
				}
				timer.Reset(keepalive)
			}
		}
	}()
	return out
}
