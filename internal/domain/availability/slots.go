package availability

const DefaultStepMinutes = 30

// Slot is a candidate booking window in minutes since midnight.
type Slot struct {
	Start int
	End   int
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// GenerateSlots emits, for every open interval of the rule, the start times spaced by
// step whose [start, start+duration) fits entirely inside the interval. Disabled rules and
// non-positive durations yield nothing; a non-positive step falls back to DefaultStepMinutes.
func GenerateSlots(rule Rule, duration, step int) []Slot {
	if !rule.Enabled || duration <= 0 {
		return nil
	}
	if step <= 0 {
		step = DefaultStepMinutes
	}

	var slots []Slot
	for _, iv := range rule.Intervals {
		for start := iv.Start; start+duration <= iv.End; start += step {
			slots = append(slots, Slot{Start: start, End: start + duration})
		}
	}
	return slots
}

// FreeSlots removes the slots that overlap any busy interval.
func FreeSlots(slots []Slot, busy []Interval) []Slot {
	free := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if !overlapsAny(s.Interval(), busy) {
			free = append(free, s)
		}
	}
	return free
}

func overlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if iv.Overlaps(b) {
			return true
		}
	}
	return false
}
