package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitRunsAllQueuedWork(t *testing.T) {
	p := New(4)
	defer p.Close()

	var n atomic.Int32
	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		p.Submit(func() {
			n.Add(1)
			wg.Done()
		}, Normal)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for queued work")
	}
	if got := n.Load(); got != 100 {
		t.Fatalf("n = %d, want 100", got)
	}
}

func TestCriticalRunsSynchronously(t *testing.T) {
	p := New(2)
	defer p.Close()

	ran := false
	p.Submit(func() { ran = true }, Critical)
	if !ran {
		t.Fatal("Critical task did not run synchronously before Submit returned")
	}
}

func TestCloseDrainsQueuedWork(t *testing.T) {
	p := New(2)

	var n atomic.Int32
	for i := 0; i < 20; i++ {
		p.Submit(func() { n.Add(1) }, Low)
	}
	p.Close()

	if got := n.Load(); got != 20 {
		t.Fatalf("n = %d, want 20 after Close drained queues", got)
	}
	if p.IsRunning() {
		t.Fatal("IsRunning() = true after Close")
	}
}
