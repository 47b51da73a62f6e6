package models

import "testing"

func TestGraduationYearShortCode(t *testing.T) {
	tests := []struct {
		year string
		want string
	}{
		{"O_LEVEL", "OL"},
		{"A_LEVEL", "AL"},
		{"2020", "2020"},
		{"class of 99", "CLASSOF99"},
	}

	for _, tt := range tests {
		year := GraduationYear{Year: tt.year}
		if got := year.ShortCode(); got != tt.want {
			t.Errorf("ShortCode(%q) = %q, want %q", tt.year, got, tt.want)
		}
	}
}
