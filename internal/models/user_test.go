package models

import (
	"testing"
	"time"
)

func TestFullName(t *testing.T) {
	user := User{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	if got := user.FullName(); got != "Jane Doe" {
		t.Errorf("FullName() = %q, want Jane Doe", got)
	}

	noName := User{Email: "jane@example.com"}
	if got := noName.FullName(); got != "jane@example.com" {
		t.Errorf("FullName() without names = %q, want the email", got)
	}
}

func TestEffectiveRole(t *testing.T) {
	alumni := User{Role: RoleAlumni}
	if alumni.EffectiveRole() != RoleAlumni {
		t.Errorf("EffectiveRole() = %q, want alumni", alumni.EffectiveRole())
	}

	super := User{Role: RoleAlumni, IsSuperuser: true}
	if super.EffectiveRole() != RoleAdmin {
		t.Errorf("superuser EffectiveRole() = %q, want admin", super.EffectiveRole())
	}
}

func TestCanLoginNotSuspended(t *testing.T) {
	user := User{}
	if !user.CanLogin(time.Now()) {
		t.Fatal("unsuspended user should be able to log in")
	}
}

func TestCanLoginPermanentSuspension(t *testing.T) {
	user := User{}
	user.Suspend("conduct", nil)

	if user.CanLogin(time.Now().Add(1000 * time.Hour)) {
		t.Fatal("permanent suspension should never lift")
	}
	if !user.IsSuspended {
		t.Fatal("suspension fields must survive a failed login check")
	}
}

func TestCanLoginTimedSuspension(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	user := User{}
	user.Suspend("spam", &expiry)

	if user.CanLogin(time.Now()) {
		t.Fatal("active timed suspension should block login")
	}

	if !user.CanLogin(expiry.Add(time.Minute)) {
		t.Fatal("expired suspension should lift on check")
	}
	if user.IsSuspended || user.SuspensionReason != "" || user.SuspendedAt != nil || user.SuspensionExpiresAt != nil {
		t.Errorf("expired suspension left fields set: %+v", user)
	}
}

func TestSuspensionExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	user := User{}
	if user.SuspensionExpired(now) {
		t.Error("unsuspended user reported expired suspension")
	}

	user.Suspend("spam", &past)
	if !user.SuspensionExpired(now) {
		t.Error("past expiry not reported as expired")
	}

	permanent := User{}
	permanent.Suspend("conduct", nil)
	if permanent.SuspensionExpired(now.Add(1000 * time.Hour)) {
		t.Error("permanent suspension reported as expired")
	}
}
