package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// SenderType tags which of the three nullable sender references is set.
type SenderType string

const (
	SenderAlumni      SenderType = "alumni"
	SenderAdmin       SenderType = "admin"
	SenderCoordinator SenderType = "coordinator"
)

// EditWindow is how long after creation the original sender may still edit a
// message.
const EditWindow = 10 * time.Minute

var ErrInvalidSender = errors.New("sender reference does not match sender type")

// SenderRef is the role-polymorphic sender of a message or reply: a tag plus
// exactly one profile ID. Both read and write paths go through it so that the
// tag and the foreign keys can never disagree.
type SenderRef struct {
	Type          SenderType
	AlumniID      *uint
	AdminID       *uint
	CoordinatorID *uint
}

// AlumniSender builds a SenderRef for an alumni profile.
func AlumniSender(profileID uint) SenderRef {
	return SenderRef{Type: SenderAlumni, AlumniID: &profileID}
}

// AdminSender builds a SenderRef for an admin profile.
func AdminSender(profileID uint) SenderRef {
	return SenderRef{Type: SenderAdmin, AdminID: &profileID}
}

// CoordinatorSender builds a SenderRef for a coordinator profile.
func CoordinatorSender(profileID uint) SenderRef {
	return SenderRef{Type: SenderCoordinator, CoordinatorID: &profileID}
}

// Validate checks that exactly one reference is set and that it matches the tag.
func (s SenderRef) Validate() error {
	set := 0
	for _, id := range []*uint{s.AlumniID, s.AdminID, s.CoordinatorID} {
		if id != nil {
			set++
		}
	}
	if set != 1 {
		return ErrInvalidSender
	}
	switch s.Type {
	case SenderAlumni:
		if s.AlumniID == nil {
			return ErrInvalidSender
		}
	case SenderAdmin:
		if s.AdminID == nil {
			return ErrInvalidSender
		}
	case SenderCoordinator:
		if s.CoordinatorID == nil {
			return ErrInvalidSender
		}
	default:
		return ErrInvalidSender
	}
	return nil
}

// ProfileID returns the profile ID the reference points at.
func (s SenderRef) ProfileID() uint {
	switch s.Type {
	case SenderAlumni:
		if s.AlumniID != nil {
			return *s.AlumniID
		}
	case SenderAdmin:
		if s.AdminID != nil {
			return *s.AdminID
		}
	case SenderCoordinator:
		if s.CoordinatorID != nil {
			return *s.CoordinatorID
		}
	}
	return 0
}

// Message is a direct message from a role-polymorphic sender to an alumni.
type Message struct {
	gorm.Model
	SenderType          SenderType `gorm:"size:20;not null;default:'alumni'"`
	SenderAlumniID      *uint      `gorm:"index"`
	SenderAdminID       *uint      `gorm:"index"`
	SenderCoordinatorID *uint      `gorm:"index"`

	RecipientID uint          `gorm:"not null;index"`
	Subject     string        `gorm:"size:200;not null"`
	Content     string        `gorm:"not null"`
	Status      MessageStatus `gorm:"size:20;not null;default:'sent'"`
	Attachment  string
	ReadAt      *time.Time

	SenderAlumni      *AlumniProfile      `gorm:"foreignKey:SenderAlumniID;constraint:OnDelete:CASCADE;"`
	SenderAdmin       *AdminProfile       `gorm:"foreignKey:SenderAdminID;constraint:OnDelete:CASCADE;"`
	SenderCoordinator *CoordinatorProfile `gorm:"foreignKey:SenderCoordinatorID;constraint:OnDelete:CASCADE;"`
	Recipient         AlumniProfile       `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE;"`
	Replies           []MessageReply      `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE;"`
}

// Sender returns the message's sender as a SenderRef.
func (m *Message) Sender() SenderRef {
	return SenderRef{
		Type:          m.SenderType,
		AlumniID:      m.SenderAlumniID,
		AdminID:       m.SenderAdminID,
		CoordinatorID: m.SenderCoordinatorID,
	}
}

// SetSender writes a validated SenderRef onto the message.
func (m *Message) SetSender(ref SenderRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	m.SenderType = ref.Type
	m.SenderAlumniID = ref.AlumniID
	m.SenderAdminID = ref.AdminID
	m.SenderCoordinatorID = ref.CoordinatorID
	return nil
}

// SenderUser resolves the owning user of the sender profile. Associations
// must be preloaded; returns nil when they are not.
func (m *Message) SenderUser() *User {
	switch m.SenderType {
	case SenderAlumni:
		if m.SenderAlumni != nil {
			return &m.SenderAlumni.User
		}
	case SenderAdmin:
		if m.SenderAdmin != nil {
			return &m.SenderAdmin.User
		}
	case SenderCoordinator:
		if m.SenderCoordinator != nil {
			return &m.SenderCoordinator.User
		}
	}
	return nil
}

// IsFromSender reports whether ref identifies this message's original sender.
func (m *Message) IsFromSender(ref SenderRef) bool {
	return m.SenderType == ref.Type && m.Sender().ProfileID() == ref.ProfileID()
}

// Editable reports whether the edit window is still open at now.
func (m *Message) Editable(now time.Time) bool {
	return now.Sub(m.CreatedAt) <= EditWindow
}

// EditDeadline is the instant the edit window closes.
func (m *Message) EditDeadline() time.Time {
	return m.CreatedAt.Add(EditWindow)
}

// MessageReply is a reply within a message thread. Parent is reserved for
// nested threading; current write paths always leave it nil.
type MessageReply struct {
	gorm.Model
	MessageID uint  `gorm:"not null;index"`
	ParentID  *uint `gorm:"index"`

	SenderType          SenderType `gorm:"size:20;not null"`
	SenderAlumniID      *uint      `gorm:"index"`
	SenderAdminID       *uint      `gorm:"index"`
	SenderCoordinatorID *uint      `gorm:"index"`

	Content    string `gorm:"not null"`
	Attachment string

	Message           *Message            `gorm:"foreignKey:MessageID"`
	Parent            *MessageReply       `gorm:"foreignKey:ParentID"`
	SenderAlumni      *AlumniProfile      `gorm:"foreignKey:SenderAlumniID;constraint:OnDelete:CASCADE;"`
	SenderAdmin       *AdminProfile       `gorm:"foreignKey:SenderAdminID;constraint:OnDelete:CASCADE;"`
	SenderCoordinator *CoordinatorProfile `gorm:"foreignKey:SenderCoordinatorID;constraint:OnDelete:CASCADE;"`
}

// Sender returns the reply's sender as a SenderRef.
func (r *MessageReply) Sender() SenderRef {
	return SenderRef{
		Type:          r.SenderType,
		AlumniID:      r.SenderAlumniID,
		AdminID:       r.SenderAdminID,
		CoordinatorID: r.SenderCoordinatorID,
	}
}

// SetSender writes a validated SenderRef onto the reply.
func (r *MessageReply) SetSender(ref SenderRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	r.SenderType = ref.Type
	r.SenderAlumniID = ref.AlumniID
	r.SenderAdminID = ref.AdminID
	r.SenderCoordinatorID = ref.CoordinatorID
	return nil
}

// SenderUser resolves the owning user of the reply's sender profile.
func (r *MessageReply) SenderUser() *User {
	switch r.SenderType {
	case SenderAlumni:
		if r.SenderAlumni != nil {
			return &r.SenderAlumni.User
		}
	case SenderAdmin:
		if r.SenderAdmin != nil {
			return &r.SenderAdmin.User
		}
	case SenderCoordinator:
		if r.SenderCoordinator != nil {
			return &r.SenderCoordinator.User
		}
	}
	return nil
}
