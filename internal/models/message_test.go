package models

import (
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestSenderRefValidate(t *testing.T) {
	id := uint(5)
	other := uint(9)

	tests := []struct {
		name    string
		ref     SenderRef
		wantErr bool
	}{
		{"alumni", AlumniSender(id), false},
		{"admin", AdminSender(id), false},
		{"coordinator", CoordinatorSender(id), false},
		{"no reference", SenderRef{Type: SenderAlumni}, true},
		{"wrong reference", SenderRef{Type: SenderAlumni, AdminID: &id}, true},
		{"two references", SenderRef{Type: SenderAlumni, AlumniID: &id, AdminID: &other}, true},
		{"unknown type", SenderRef{Type: "robot", AlumniID: &id}, true},
	}

	for _, tt := range tests {
		err := tt.ref.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSenderRefProfileID(t *testing.T) {
	if got := AlumniSender(7).ProfileID(); got != 7 {
		t.Errorf("AlumniSender(7).ProfileID() = %d", got)
	}
	if got := AdminSender(3).ProfileID(); got != 3 {
		t.Errorf("AdminSender(3).ProfileID() = %d", got)
	}
	if got := (SenderRef{Type: SenderAlumni}).ProfileID(); got != 0 {
		t.Errorf("empty ref ProfileID() = %d, want 0", got)
	}
}

func TestMessageSetSenderRejectsInvalid(t *testing.T) {
	var message Message
	if err := message.SetSender(SenderRef{Type: SenderAdmin}); err == nil {
		t.Fatal("SetSender accepted a ref with no profile ID")
	}

	if err := message.SetSender(CoordinatorSender(11)); err != nil {
		t.Fatalf("SetSender rejected a valid ref: %v", err)
	}
	if message.SenderType != SenderCoordinator || message.SenderCoordinatorID == nil || *message.SenderCoordinatorID != 11 {
		t.Errorf("SetSender wrote %q/%v", message.SenderType, message.SenderCoordinatorID)
	}
	if message.SenderAlumniID != nil || message.SenderAdminID != nil {
		t.Error("SetSender left stale sender references")
	}
}

func TestIsFromSender(t *testing.T) {
	var message Message
	if err := message.SetSender(AlumniSender(4)); err != nil {
		t.Fatal(err)
	}

	if !message.IsFromSender(AlumniSender(4)) {
		t.Error("original sender not recognized")
	}
	if message.IsFromSender(AlumniSender(5)) {
		t.Error("different profile recognized as sender")
	}
	if message.IsFromSender(AdminSender(4)) {
		t.Error("same ID under a different role recognized as sender")
	}
}

func TestEditWindow(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	message := Message{Model: gorm.Model{CreatedAt: created}}

	if !message.Editable(created.Add(9 * time.Minute)) {
		t.Error("message inside the window reported uneditable")
	}
	if !message.Editable(created.Add(EditWindow)) {
		t.Error("message at the window boundary reported uneditable")
	}
	if message.Editable(created.Add(EditWindow + time.Second)) {
		t.Error("message past the window reported editable")
	}

	if got := message.EditDeadline(); !got.Equal(created.Add(EditWindow)) {
		t.Errorf("EditDeadline() = %v, want %v", got, created.Add(EditWindow))
	}
}
