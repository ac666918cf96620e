package task

import (
	"context"
	"testing"
	"time"
)

func TestStream_ForwardsSnapshots(t *testing.T) {
	m := NewManager(ManagerConfig{})
	m.Create("task-1")

	queue, cancel := m.Subscribe("task-1")
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	events := Stream(ctx, queue, time.Minute)

	m.Update("task-1", Update{Status: Ptr(StatusSearching), Percent: Ptr(30)})

	select {
	case ev := <-events:
		if ev.Keepalive {
			t.Fatal("got keepalive, want snapshot")
		}
		if ev.Task.Percent != 30 {
			t.Errorf("Percent = %d, want 30", ev.Task.Percent)
		}
	case <-time.After(time.Second):
		t.Fatal("no event before keepalive interval")
	}
}

func TestStream_InjectsKeepalive(t *testing.T) {
	queue := make(chan Task)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	events := Stream(ctx, queue, 20*time.Millisecond)

	select {
	case ev := <-events:
		if !ev.Keepalive {
			t.Errorf("event = %+v, want keepalive", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no keepalive injected")
	}
}

func TestStream_EndsOnTerminalSnapshot(t *testing.T) {
	queue := make(chan Task, 1)
	ctx := context.Background()

	events := Stream(ctx, queue, time.Minute)
	queue <- Task{ID: "task-1", Status: StatusCompleted, Percent: 100}

	ev, ok := <-events
	if !ok {
		t.Fatal("stream closed before terminal snapshot")
	}
	if ev.Task.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", ev.Task.Status)
	}

	if _, ok := <-events; ok {
		t.Error("stream still open after terminal snapshot")
	}
}

func TestStream_EndsWhenQueueCloses(t *testing.T) {
	queue := make(chan Task)
	events := Stream(context.Background(), queue, time.Minute)

	close(queue)

	select {
	case _, ok := <-events:
		if ok {
			t.Error("got event after queue close, want closed stream")
		}
	case <-time.After(time.Second):
		t.Fatal("stream did not close")
	}
}

func TestStream_EndsOnContextCancel(t *testing.T) {
	queue := make(chan Task)
	ctx, cancel := context.WithCancel(context.Background())

	events := Stream(ctx, queue, time.Minute)
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("got event after cancel, want closed stream")
		}
	case <-time.After(time.Second):
		t.Fatal("stream did not close on cancel")
	}
}

func TestStream_KeepaliveResetByActivity(t *testing.T) {
	queue := make(chan Task, 4)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	events := Stream(ctx, queue, 50*time.Millisecond)

	// Feed snapshots faster than the keepalive interval.
	for i := 0; i < 3; i++ {
		queue <- Task{ID: "task-1", Status: StatusSearching, Percent: i * 10}
		select {
		case ev := <-events:
			if ev.Keepalive {
				t.Fatal("keepalive fired despite recent activity")
			}
		case <-time.After(time.Second):
			t.Fatal("snapshot not forwarded")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
