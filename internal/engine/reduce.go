package engine

// Reduce applies a to s and returns the resulting state. It has no side
// effects.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Start:
		// a countdown that has already run out stays stopped until it is
		// reset or the mode changes
		if s.Remaining == 0 {
			return s
		}

		s.Running = true
	case Pause:
		s.Running = false
	case Reset:
		s.Running = false
		s.Remaining = s.Config.Seconds(s.Mode)
	case Tick:
		if s.Remaining > 0 {
			s.Remaining--
		}
	case SetMode:
		if !a.Mode.Valid() {
			return s
		}

		s.Mode = a.Mode
		s.Running = false
		s.Remaining = s.Config.Seconds(a.Mode)
	case SetActiveTask:
		s.ActiveTaskID = a.TaskID
	case SetConfig:
		s.Config = a.Patch.Apply(s.Config)
		s.Remaining = s.Config.Seconds(s.Mode)
	case CompleteWorkSession:
		s.Completed++

		s.Mode = ShortBreak
		if s.Completed%s.Config.LongBreakInterval == 0 {
			s.Mode = LongBreak
		}

		s.Running = false
		s.Remaining = s.Config.Seconds(s.Mode)
	}

	return s
}

// Finished reports whether the transition from prev to next ran a countdown
// out: next has no time left and prev was running.
func Finished(prev, next State) bool {
	return prev.Running && next.Remaining == 0
}
