package system

import "time"

// Handle controls one repeating task. Cancel is idempotent.
type Handle struct {
	id        uint64
	cancelled bool
}

// Cancel stops the task. It reports true only for the call that actually
// cancelled it.
func (h *Handle) Cancel() bool {
	if h.cancelled {
		return false
	}
	h.cancelled = true
	return true
}

func (h *Handle) Cancelled() bool { return h.cancelled }

type repeatingTask struct {
	fn       func()
	due      uint64
	interval uint64
	handle   *Handle
}

// Scheduler runs repeating tasks on server ticks, on the game loop goroutine.
// It is itself a System in PhaseUpdate so tasks observe a consistent world.
type Scheduler struct {
	tick   uint64
	nextID uint64
	tasks  []*repeatingTask
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make([]*repeatingTask, 0, 64)}
}

func (s *Scheduler) Phase() Phase { return PhaseUpdate }

// CurrentTick returns the number of ticks run so far.
func (s *Scheduler) CurrentTick() uint64 { return s.tick }

// ScheduleRepeating runs fn first after delay ticks and then every interval
// ticks until the returned handle is cancelled. A zero delay or interval is
// treated as one tick.
func (s *Scheduler) ScheduleRepeating(fn func(), delay, interval uint64) *Handle {
	if delay == 0 {
		delay = 1
	}
	if interval == 0 {
		interval = 1
	}
	s.nextID++
	h := &Handle{id: s.nextID}
	s.tasks = append(s.tasks, &repeatingTask{
		fn:       fn,
		due:      s.tick + delay,
		interval: interval,
		handle:   h,
	})
	return h
}

// Pending returns the number of tasks that are still scheduled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.handle.cancelled {
			n++
		}
	}
	return n
}

func (s *Scheduler) Update(_ time.Duration) {
	s.tick++

	// Tasks scheduled from inside a callback wait for the next tick.
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if t.handle.cancelled || t.due > s.tick {
			continue
		}
		t.fn()
		t.due += t.interval
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.handle.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
