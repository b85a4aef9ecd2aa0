// Package scheduler implements the kernel's discrete-event scheduler: a
// min-priority queue keyed by logical simulated time, in nanoseconds.
//
// The queue shape — a slice-backed container/heap.Interface with Push/Pop
// appending/removing the last element — follows the teacher's own
// wall-clock timer heap (joeycumines-go-utilpkg/eventloop's timerHeap in
// loop.go), generalized from time.Time deadlines to the spec's logical
// nanosecond clock and given an explicit sequence number so that entries
// scheduled for the same instant execute in insertion order (FIFO), which
// the teacher's wall-clock heap does not need since real timestamps are
// never exactly equal in practice.
package scheduler

import "container/heap"

// Time is logical simulated time, in nanoseconds, since the scheduler was
// created. It only ever moves forward.
type Time uint64

// Task is a unit of deferred work. Tasks must not panic across the
// scheduler boundary; see Scheduler.OnTaskError.
type Task func()

type entry struct {
	time Time
	seq  uint64
	task Task
}

type taskHeap []entry

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(entry))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Scheduler is a single-threaded, cooperative discrete-event queue. It has
// no internal concurrency: every method must be called from the same
// logical thread that drives Step/Run, matching the kernel-wide contract in
// spec.md §5 ("no locks, no atomics, no shared mutable state across
// threads").
type Scheduler struct {
	now   Time
	seq   uint64
	queue taskHeap

	// OnTaskError, if set, is called with the recovered panic value when a
	// scheduled Task panics. A malfunctioning task must never stop the
	// scheduler; see spec.md §7's "Chip evaluator exception" handling.
	OnTaskError func(recovered any)
}

// New returns a Scheduler with its logical clock at 0.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current logical time.
func (s *Scheduler) Now() Time { return s.now }

// Pending reports the number of tasks not yet drained.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Schedule enqueues task to run at Now()+delay. Entries scheduled at equal
// times run in the order Schedule was called (FIFO tie-break).
func (s *Scheduler) Schedule(delay Time, task Task) {
	s.seq++
	heap.Push(&s.queue, entry{time: s.now + delay, seq: s.seq, task: task})
}

func (s *Scheduler) exec(t Task) {
	defer func() {
		if r := recover(); r != nil && s.OnTaskError != nil {
			s.OnTaskError(r)
		}
	}()
	t()
}

// drainReady pops and executes every entry whose time is <= s.now, in
// heap (time, then FIFO) order. A task may itself Schedule new entries;
// since those are only ready once their time is <= the now already
// established by the caller, a single drain pass here handles them
// correctly without re-entering Step or Run.
func (s *Scheduler) drainReady() {
	for len(s.queue) > 0 && s.queue[0].time <= s.now {
		e := heap.Pop(&s.queue).(entry)
		s.exec(e.task)
	}
}

// Step advances the logical clock by dt and drains every entry that becomes
// ready, in time order.
func (s *Scheduler) Step(dt Time) {
	s.now += dt
	s.drainReady()
}

// Run advances the clock toward Now()+duration in event-sized jumps,
// draining ripe entries as it goes, so that a task scheduling more work
// earlier than the next queued entry still executes in correct time order
// before the clock reaches its target.
func (s *Scheduler) Run(duration Time) {
	target := s.now + duration
	for len(s.queue) > 0 && s.queue[0].time <= target {
		e := heap.Pop(&s.queue).(entry)
		if e.time > s.now {
			s.now = e.time
		}
		s.exec(e.task)
	}
	if target > s.now {
		s.now = target
	}
}
