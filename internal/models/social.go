package models

import "time"

// Follow is a directed edge: follower watches following. Uniqueness on the
// ordered pair doubles as the concurrent-toggle guard.
type Follow struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follow_pair"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follow_pair;index"`
	CreatedAt   time.Time

	Follower  User `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following User `gorm:"foreignKey:FollowingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type FriendRequestStatus string

const (
	RequestPending   FriendRequestStatus = "pending"
	RequestAccepted  FriendRequestStatus = "accepted"
	RequestRejected  FriendRequestStatus = "rejected"
	RequestCancelled FriendRequestStatus = "cancelled"
)

// FriendRequest is unique per (sender, receiver); re-sending after rejection
// or cancellation flips the existing row back to pending instead of inserting
// a duplicate.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey"`
	SenderID   uint                `gorm:"not null;uniqueIndex:idx_request_pair"`
	ReceiverID uint                `gorm:"not null;uniqueIndex:idx_request_pair;index"`
	Status     FriendRequestStatus `gorm:"size:20;not null;default:'pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Friendship is an undirected edge stored as an ordered pair so each pair has
// exactly one canonical row. All reads and writes must order IDs through
// CanonicalPair.
type Friendship struct {
	ID        uint `gorm:"primaryKey"`
	User1ID   uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	User2ID   uint `gorm:"not null;uniqueIndex:idx_friendship_pair;index"`
	CreatedAt time.Time

	User1 User `gorm:"foreignKey:User1ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User2 User `gorm:"foreignKey:User2ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CanonicalPair orders two user IDs into the canonical (lower, higher) form
// used by Friendship rows.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// NewFriendship builds a canonical friendship row for two users.
func NewFriendship(a, b uint) Friendship {
	lo, hi := CanonicalPair(a, b)
	return Friendship{User1ID: lo, User2ID: hi}
}
