package models

import (
	"testing"
	"time"
)

func TestEventRegistrationOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"upcoming no deadline", Event{Status: EventUpcoming}, true},
		{"upcoming before deadline", Event{Status: EventUpcoming, RegistrationDeadline: &future}, true},
		{"upcoming past deadline", Event{Status: EventUpcoming, RegistrationDeadline: &past}, false},
		{"cancelled", Event{Status: EventCancelled}, false},
		{"completed", Event{Status: EventCompleted, RegistrationDeadline: &future}, false},
	}

	for _, tt := range tests {
		if got := tt.event.RegistrationOpen(now); got != tt.want {
			t.Errorf("%s: RegistrationOpen() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestJobApplicationOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		job  JobPosting
		want bool
	}{
		{"active no deadline", JobPosting{IsActive: true}, true},
		{"active before deadline", JobPosting{IsActive: true, ApplicationDeadline: &future}, true},
		{"active past deadline", JobPosting{IsActive: true, ApplicationDeadline: &past}, false},
		{"inactive", JobPosting{IsActive: false, ApplicationDeadline: &future}, false},
	}

	for _, tt := range tests {
		if got := tt.job.ApplicationOpen(now); got != tt.want {
			t.Errorf("%s: ApplicationOpen() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
