// Package sched provides a cooperative, virtual-clock task scheduler.
//
// Nothing here runs on its own goroutine: the host frame loop calls Advance
// with the time that passed, and due tasks fire synchronously, in due-time
// order, on the caller's goroutine. This keeps game state single-owner and
// makes every timer deterministic under test.
package sched

import (
	"container/heap"
	"time"
)

// minInterval keeps a periodic task from firing unboundedly within one Advance.
const minInterval = time.Millisecond

// Task is a scheduled callback. A nil *Task is valid and inert.
type Task struct {
	due      time.Duration
	interval time.Duration // 0 for one-shot tasks
	fn       func()
	seq      uint64
	index    int
	done     bool
	owner    *Scheduler
}

// Cancel stops the task. Cancelling twice, or cancelling a task that already
// fired, is a no-op.
func (t *Task) Cancel() {
	if t == nil || t.done {
		return
	}
	t.done = true
	if t.owner != nil && t.index >= 0 {
		heap.Remove(&t.owner.queue, t.index)
	}
}

// Active reports whether the task will still fire.
func (t *Task) Active() bool {
	return t != nil && !t.done
}

// Interval returns the period of a repeating task, or 0 for one-shots.
func (t *Task) Interval() time.Duration {
	if t == nil {
		return 0
	}
	return t.interval
}

// Scheduler owns a virtual clock and the tasks waiting on it.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// New creates a scheduler with its clock at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of tasks waiting to fire.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// After schedules fn to run once, delay from now.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	return s.schedule(max(delay, 0), 0, fn)
}

// Every schedules fn to run every interval, first firing one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	interval = max(interval, minInterval)
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(delay, interval time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{
		due:      s.now + delay,
		interval: interval,
		fn:       fn,
		seq:      s.seq,
		owner:    s,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d, firing every task that comes due.
// Tasks scheduled by callbacks fire in the same call if they fall inside the
// window. Negative durations are ignored.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d
	for s.queue.Len() > 0 {
		t := s.queue[0]
		if t.due > target {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
			heap.Fix(&s.queue, 0)
		} else {
			heap.Pop(&s.queue)
			t.done = true
		}
		t.fn()
	}
	s.now = target
}

// Reset cancels every pending task. The clock keeps its value.
func (s *Scheduler) Reset() {
	for s.queue.Len() > 0 {
		heap.Pop(&s.queue).(*Task).done = true
	}
}

// taskQueue is a min-heap ordered by due time, then creation order.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
