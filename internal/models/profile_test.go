package models

import "testing"

func TestFormatStudentID(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"COSAOL", 1, "COSAOL001"},
		{"COSAOL", 42, "COSAOL042"},
		{"COSAAL", 999, "COSAAL999"},
		{"COSAAL", 1000, "COSAAL1000"},
	}

	for _, tt := range tests {
		if got := FormatStudentID(tt.prefix, tt.seq); got != tt.want {
			t.Errorf("FormatStudentID(%q, %d) = %q, want %q", tt.prefix, tt.seq, got, tt.want)
		}
	}
}

func TestStudentIDPrefix(t *testing.T) {
	if got := StudentIDPrefix("OL"); got != "COSAOL" {
		t.Errorf("StudentIDPrefix(OL) = %q, want COSAOL", got)
	}
	if got := StudentIDPrefix("AL"); got != "COSAAL" {
		t.Errorf("StudentIDPrefix(AL) = %q, want COSAAL", got)
	}
}

func TestStudentIDSequence(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"COSAOL001", 1},
		{"COSAOL042", 42},
		{"COSAAL999", 999},
		{"COSAOLxyz", 0},
		{"", 0},
		{"AB", 0},
	}

	for _, tt := range tests {
		if got := StudentIDSequence(tt.id); got != tt.want {
			t.Errorf("StudentIDSequence(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	for seq := 1; seq <= 999; seq += 111 {
		id := FormatStudentID("COSAOL", seq)
		if got := StudentIDSequence(id); got != seq {
			t.Fatalf("sequence %d round-tripped to %d via %q", seq, got, id)
		}
	}
}
