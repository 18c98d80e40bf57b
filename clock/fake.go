package clock

import (
	"container/heap"
	"sync"
	"time"
)

// FakeClock is a manually driven Clock. Its time changes only through
// Advance, which releases every sleeper and ticker whose deadline has been
// reached. Safe for concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	queue  timerQueue
	seq    uint64
	notify chan struct{} // closed and replaced whenever a timer is added
}

// Fake returns a FakeClock reading start.
func Fake(start time.Time) *FakeClock {
	return &FakeClock{now: start, notify: make(chan struct{})}
}

// timer is one pending deadline. period is zero for one-shot timers.
type timer struct {
	when   time.Time
	seq    uint64
	period time.Duration
	ch     chan time.Time
	index  int // position in the queue, -1 once removed
}

// timerQueue orders timers by deadline, then by registration order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].when.Equal(q[j].when) {
		return q[i].seq < q[j].seq
	}
	return q[i].when.Before(q[j].when)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	t := old[len(old)-1]
	old[len(old)-1] = nil
	t.index = -1
	*q = old[:len(old)-1]
	return t
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// schedule queues a timer firing after d. Caller holds c.mu.
func (c *FakeClock) schedule(d, period time.Duration) *timer {
	c.seq++
	t := &timer{
		when:   c.now.Add(d),
		seq:    c.seq,
		period: period,
		ch:     make(chan time.Time, 1),
	}
	heap.Push(&c.queue, t)
	close(c.notify)
	c.notify = make(chan struct{})
	return t
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d <= 0 {
		ch := make(chan time.Time, 1)
		ch <- c.now
		return ch
	}
	return c.schedule(d, 0).ch
}

func (c *FakeClock) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: NewTicker needs a positive interval")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return &fakeTicker{clock: c, t: c.schedule(d, d)}
}

func (c *FakeClock) Sleep(d time.Duration) {
	<-c.After(d)
}

// Advance moves time forward by d, then wakes due timers in deadline
// order. A ticker overtaken by several periods is rescheduled past the new
// time and delivers at most one tick, since its channel holds one.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []chan time.Time
	for c.queue.Len() > 0 && !c.queue[0].when.After(now) {
		t := c.queue[0]
		due = append(due, t.ch)
		if t.period > 0 {
			for !t.when.After(now) {
				t.when = t.when.Add(t.period)
			}
			heap.Fix(&c.queue, 0)
		} else {
			heap.Pop(&c.queue)
		}
	}
	c.mu.Unlock()

	for _, ch := range due {
		select {
		case ch <- now:
		default:
		}
	}
}

// WaitForTimers blocks until at least n timers are pending. Tests call it
// before Advance so a goroutine's sleep is registered first.
func (c *FakeClock) WaitForTimers(n int) {
	for {
		c.mu.Lock()
		if c.queue.Len() >= n {
			c.mu.Unlock()
			return
		}
		notify := c.notify
		c.mu.Unlock()
		<-notify
	}
}

// PendingCount reports how many timers are waiting to fire.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

type fakeTicker struct {
	clock *FakeClock
	t     *timer
}

func (f *fakeTicker) C() <-chan time.Time { return f.t.ch }

func (f *fakeTicker) Stop() {
	f.clock.mu.Lock()
	defer f.clock.mu.Unlock()
	if f.t.index >= 0 {
		heap.Remove(&f.clock.queue, f.t.index)
	}
}
