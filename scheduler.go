package tod

import (
	"container/heap"
	"math"
	"time"
)

// TaskID identifies a task registered with a Scheduler. Zero is never issued.
type TaskID uint64

// task is a sleeping continuation: it runs once the scheduler's virtual time
// reaches wake.
type task struct {
	id     TaskID
	wake   time.Duration
	resume func()
}

type taskHeapInner struct {
	q []task
}

func (t *taskHeapInner) Len() int {
	return len(t.q)
}

// Less orders by wake deadline, ties by registration order (ids increase).
func (t *taskHeapInner) Less(i, j int) bool {
	if t.q[i].wake != t.q[j].wake {
		return t.q[i].wake < t.q[j].wake
	}
	return t.q[i].id < t.q[j].id
}

func (t *taskHeapInner) Swap(i, j int) {
	t.q[i], t.q[j] = t.q[j], t.q[i]
}

func (t *taskHeapInner) Push(x any) {
	t.q = append(t.q, x.(task))
}

func (t *taskHeapInner) Pop() any {
	last := len(t.q) - 1
	v := t.q[last]
	t.q[last] = task{}
	t.q = t.q[:last]
	return v
}

// Scheduler is a single-threaded cooperative run loop over virtual time.
// Sleep registers a continuation; Advance moves time forward and resumes every
// continuation whose deadline has been reached, in deadline order with ties
// broken by registration order.
//
// Scheduler is not safe for concurrent use. A Stage owns one and drives it
// from Stage.Update.
//
// Time is kept in whole nanoseconds so that many small steps add up exactly;
// ten Advance(0.1) calls reach a deadline of one second.
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	tasks  taskHeapInner
}

// NewScheduler returns a scheduler at time zero with no tasks.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's virtual time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now.Seconds()
}

// Pending returns the number of tasks that have not resumed or been cancelled.
func (s *Scheduler) Pending() int {
	return s.tasks.Len()
}

// Sleep registers resume to run once d seconds of virtual time have elapsed.
// A negative or NaN d is treated as zero; such a task runs on the next
// Advance. A d too large to represent waits until virtual time itself
// saturates.
func (s *Scheduler) Sleep(d float64, resume func()) TaskID {
	s.nextID++
	id := s.nextID
	heap.Push(&s.tasks, task{id: id, wake: after(s.now, seconds(d)), resume: resume})
	return id
}

// Cancel drops a pending task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks.q {
		if t.id == id {
			heap.Remove(&s.tasks, i)
			return true
		}
	}
	return false
}

// Advance moves virtual time forward by dt seconds and resumes every task
// whose deadline is now due. A resumed task may Sleep again; if the new
// deadline is already due it runs within the same Advance.
func (s *Scheduler) Advance(dt float64) {
	s.now = after(s.now, seconds(dt))
	for s.tasks.Len() > 0 && s.tasks.q[0].wake <= s.now {
		t := heap.Pop(&s.tasks).(task)
		if t.resume != nil {
			t.resume()
		}
	}
}

// never is the deadline of a sleep too long to represent. Such a task stays
// pending until cancelled.
const never = time.Duration(math.MaxInt64)

// seconds converts a float seconds value to a Duration, rounding to the
// nearest nanosecond. Negative values and NaN clamp to zero; values past the
// Duration range, +Inf included, saturate to never.
func seconds(v float64) time.Duration {
	if !(v > 0) {
		return 0
	}
	ns := math.Round(v * float64(time.Second))
	if ns >= float64(never) {
		return never
	}
	return time.Duration(ns)
}

// after returns t+d for non-negative d, saturating at never.
func after(t, d time.Duration) time.Duration {
	if d > never-t {
		return never
	}
	return t + d
}
