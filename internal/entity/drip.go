package entity

// Drip re-contact cadence for unresponsive leads. Each consecutive
// unanswered attempt pushes the next call further out, converging on a
// roughly monthly rhythm once the table is exhausted.
var dripGaps = []int{2, 3, 7, 9, 7, 8, 8, 8, 29}

const dripFallbackDays = 30

// IsAttemptStatus reports whether a status counts as a no-response contact
// attempt, the only outcomes that advance the drip sequence.
func IsAttemptStatus(status string) bool {
	return status == StatusCallNotPickedUp || status == StatusSentWhatsApp
}

// AttemptStreak counts consecutive attempt-status entries from the head of
// the history (newest first), stopping at the first entry of any other
// status. A lead that answered and then went quiet starts over at zero.
func AttemptStreak(history []FollowUp) int {
	streak := 0
	for _, fu := range history {
		if !IsAttemptStatus(fu.Status) {
			break
		}
		streak++
	}
	return streak
}

// NextContactDate computes the auto-scheduled next contact day for a
// proposed status given the lead's history (newest first). The second
// return is false for statuses outside the drip sequence: the caller may
// still pick a date manually. Pure function of its inputs.
func NextContactDate(status string, history []FollowUp, today Date) (Date, bool) {
	if !IsAttemptStatus(status) {
		return Date{}, false
	}
	streak := AttemptStreak(history)
	days := dripFallbackDays
	if streak < len(dripGaps) {
		days = dripGaps[streak]
	}
	return today.AddDays(days), true
}
