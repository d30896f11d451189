package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: host input (demo driver)
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: scheduled tasks
	PhasePostUpdate              // 3: advance entity lifetimes
	PhasePersist                 // 4: skill profile saves
	PhaseCleanup                 // 5: destroy queued entities
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
