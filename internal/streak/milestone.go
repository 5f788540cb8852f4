package streak

// Milestones are the streak lengths celebrated on the streak screen.
var Milestones = []int{7, 30, 60, 100, 365}

// NextMilestone returns the smallest milestone strictly above current.
// It returns false once every milestone has been passed.
func NextMilestone(current int) (int, bool) {
	for _, m := range Milestones {
		if m > current {
			return m, true
		}
	}
	return 0, false
}

// Reached returns the milestones at or below current, in ascending order.
func Reached(current int) []int {
	var out []int
	for _, m := range Milestones {
		if m <= current {
			out = append(out, m)
		}
	}
	return out
}

// Crossed returns the milestones passed when a streak moves from before to
// after. It is empty unless the streak grew.
func Crossed(before, after int) []int {
	var out []int
	for _, m := range Milestones {
		if before < m && m <= after {
			out = append(out, m)
		}
	}
	return out
}
