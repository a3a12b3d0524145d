package engine

// ConfigPatch is a partial Config. A field that is zero or negative is
// treated as not supplied and the current value is kept.
type ConfigPatch struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
}

// Apply merges the patch into c and returns the result.
func (p ConfigPatch) Apply(c Config) Config {
	return Config{
		WorkMinutes:       orPrevious(p.WorkMinutes, c.WorkMinutes),
		ShortBreakMinutes: orPrevious(p.ShortBreakMinutes, c.ShortBreakMinutes),
		LongBreakMinutes:  orPrevious(p.LongBreakMinutes, c.LongBreakMinutes),
		LongBreakInterval: orPrevious(p.LongBreakInterval, c.LongBreakInterval),
	}
}

// Ignored returns the names of fields that were set to a negative value and
// will therefore be discarded by Apply. Zero is indistinguishable from an
// absent field and is not reported.
func (p ConfigPatch) Ignored() []string {
	var fields []string

	if p.WorkMinutes < 0 {
		fields = append(fields, "work")
	}

	if p.ShortBreakMinutes < 0 {
		fields = append(fields, "short break")
	}

	if p.LongBreakMinutes < 0 {
		fields = append(fields, "long break")
	}

	if p.LongBreakInterval < 0 {
		fields = append(fields, "long break interval")
	}

	return fields
}

// Diff returns a patch holding only the fields of next that differ from
// prev. Applying it to prev yields next when next is fully positive.
func Diff(prev, next Config) ConfigPatch {
	var p ConfigPatch

	if next.WorkMinutes != prev.WorkMinutes {
		p.WorkMinutes = next.WorkMinutes
	}

	if next.ShortBreakMinutes != prev.ShortBreakMinutes {
		p.ShortBreakMinutes = next.ShortBreakMinutes
	}

	if next.LongBreakMinutes != prev.LongBreakMinutes {
		p.LongBreakMinutes = next.LongBreakMinutes
	}

	if next.LongBreakInterval != prev.LongBreakInterval {
		p.LongBreakInterval = next.LongBreakInterval
	}

	return p
}

// Empty reports whether the patch supplies no positive field.
func (p ConfigPatch) Empty() bool {
	return p.WorkMinutes <= 0 &&
		p.ShortBreakMinutes <= 0 &&
		p.LongBreakMinutes <= 0 &&
		p.LongBreakInterval <= 0
}

func orPrevious(v, prev int) int {
	if v > 0 {
		return v
	}

	return prev
}
