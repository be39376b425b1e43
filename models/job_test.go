package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     JobStatus
		to       JobStatus
		expected bool
	}{
		// forward path
		{"open to quoted", JobStatusOpen, JobStatusQuoted, true},
		{"open to assigned (direct accept)", JobStatusOpen, JobStatusAssigned, true},
		{"quoted to assigned", JobStatusQuoted, JobStatusAssigned, true},
		{"assigned to in_progress", JobStatusAssigned, JobStatusInProgress, true},
		{"in_progress to completed", JobStatusInProgress, JobStatusCompleted, true},

		// cancellation allowed until work is assigned; a job that already
		// has quotes can still be withdrawn
		{"open to cancelled", JobStatusOpen, JobStatusCancelled, true},
		{"quoted to cancelled", JobStatusQuoted, JobStatusCancelled, true},
		{"assigned to cancelled", JobStatusAssigned, JobStatusCancelled, false},
		{"in_progress to cancelled", JobStatusInProgress, JobStatusCancelled, false},
		{"completed to cancelled", JobStatusCompleted, JobStatusCancelled, false},

		// no skipping
		{"open to in_progress", JobStatusOpen, JobStatusInProgress, false},
		{"open to completed", JobStatusOpen, JobStatusCompleted, false},
		{"quoted to completed", JobStatusQuoted, JobStatusCompleted, false},
		{"assigned to completed", JobStatusAssigned, JobStatusCompleted, false},

		// no going backwards
		{"assigned to open", JobStatusAssigned, JobStatusOpen, false},
		{"in_progress to assigned", JobStatusInProgress, JobStatusAssigned, false},
		{"completed to in_progress", JobStatusCompleted, JobStatusInProgress, false},
		{"quoted to open", JobStatusQuoted, JobStatusOpen, false},

		// terminal states go nowhere
		{"completed to assigned", JobStatusCompleted, JobStatusAssigned, false},
		{"cancelled to open", JobStatusCancelled, JobStatusOpen, false},
		{"cancelled to assigned", JobStatusCancelled, JobStatusAssigned, false},

		// degenerate
		{"self transition open", JobStatusOpen, JobStatusOpen, false},
		{"unknown from", JobStatus("bogus"), JobStatusAssigned, false},
		{"unknown to", JobStatusOpen, JobStatus("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("CanTransition(%q, %q) = %v, expected %v",
					tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []JobStatus{JobStatusCompleted, JobStatusCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%q should be terminal", s)
		}
	}
	active := []JobStatus{JobStatusOpen, JobStatusQuoted, JobStatusAssigned, JobStatusInProgress}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestValidAdvanceTarget(t *testing.T) {
	tests := []struct {
		name     string
		to       JobStatus
		expected bool
	}{
		{"in_progress is requestable", JobStatusInProgress, true},
		{"completed is requestable", JobStatusCompleted, true},

		// assignment only via quote acceptance, cancellation via its own
		// operation; a forged request body must not reach either
		{"assigned rejected", JobStatusAssigned, false},
		{"cancelled rejected", JobStatusCancelled, false},
		{"quoted rejected", JobStatusQuoted, false},
		{"open rejected", JobStatusOpen, false},
		{"unknown rejected", JobStatus("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAdvanceTarget(tt.to); got != tt.expected {
				t.Errorf("ValidAdvanceTarget(%q) = %v, expected %v", tt.to, got, tt.expected)
			}
		})
	}
}

func TestValidUrgency(t *testing.T) {
	for _, u := range []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency} {
		if !ValidUrgency(u) {
			t.Errorf("ValidUrgency(%q) = false, expected true", u)
		}
	}
	for _, u := range []Urgency{"", "urgent", "ASAP"} {
		if ValidUrgency(u) {
			t.Errorf("ValidUrgency(%q) = true, expected false", u)
		}
	}
}

func TestValidRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if !ValidRating(rating) {
			t.Errorf("ValidRating(%d) = false, expected true", rating)
		}
	}
	for _, rating := range []int{0, -1, 6, 100} {
		if ValidRating(rating) {
			t.Errorf("ValidRating(%d) = true, expected false", rating)
		}
	}
}

func BenchmarkCanTransition(b *testing.B) {
	for i := 0; i < b.N; i++ {
		CanTransition(JobStatusOpen, JobStatusAssigned)
	}
}
