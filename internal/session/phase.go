package session

import "github.com/looplab/fsm"

// Phase is the lifecycle phase of a quiz session.
type Phase int

const (
	PhaseUnselected Phase = iota // No configuration chosen yet
	PhaseReady                   // Configuration chosen, zones empty, items not yet presented
	PhaseInProgress              // Items presented; drops and removals accepted
	PhaseFinished                // Graded; no further mutation
)

// String returns the phase name, which is also its state-machine state.
func (p Phase) String() string {
	switch p {
	case PhaseUnselected:
		return "unselected"
	case PhaseReady:
		return "ready"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

func parsePhase(state string) Phase {
	switch state {
	case "ready":
		return PhaseReady
	case "in_progress":
		return PhaseInProgress
	case "finished":
		return PhaseFinished
	default:
		return PhaseUnselected
	}
}

const (
	eventSelect = "select"
	eventStart  = "start"
	eventFinish = "finish"
	eventReset  = "reset"
)

var allPhases = []string{
	PhaseUnselected.String(),
	PhaseReady.String(),
	PhaseInProgress.String(),
	PhaseFinished.String(),
}

// transitions is the complete phase table. Drops and removals stay inside
// in_progress and are guarded by the engine, not by an event.
var transitions = fsm.Events{
	{Name: eventSelect, Src: allPhases, Dst: PhaseReady.String()},
	{Name: eventStart, Src: []string{PhaseReady.String()}, Dst: PhaseInProgress.String()},
	{Name: eventFinish, Src: []string{PhaseInProgress.String()}, Dst: PhaseFinished.String()},
	{Name: eventReset, Src: allPhases, Dst: PhaseUnselected.String()},
}
