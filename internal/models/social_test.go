package models

import "testing"

func TestCanonicalPair(t *testing.T) {
	tests := []struct {
		a, b   uint
		lo, hi uint
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{7, 7, 7, 7},
		{100, 3, 3, 100},
	}

	for _, tt := range tests {
		lo, hi := CanonicalPair(tt.a, tt.b)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("CanonicalPair(%d, %d) = (%d, %d), want (%d, %d)",
				tt.a, tt.b, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestNewFriendshipIsCanonical(t *testing.T) {
	forward := NewFriendship(4, 9)
	reverse := NewFriendship(9, 4)

	if forward.User1ID != 4 || forward.User2ID != 9 {
		t.Fatalf("NewFriendship(4, 9) = (%d, %d), want (4, 9)", forward.User1ID, forward.User2ID)
	}
	if reverse.User1ID != forward.User1ID || reverse.User2ID != forward.User2ID {
		t.Errorf("NewFriendship is order dependent: (%d, %d) vs (%d, %d)",
			forward.User1ID, forward.User2ID, reverse.User1ID, reverse.User2ID)
	}
}
