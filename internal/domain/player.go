package domain

import "time"

// PlayerStatus is the roster status of a player
type PlayerStatus string

const (
	PlayerStatusActive   PlayerStatus = "active"
	PlayerStatusInactive PlayerStatus = "inactive"
)

// HighFrequencyThreshold is the attendance percentage counted as high frequency
const HighFrequencyThreshold = 80

// Player represents a roster entry
type Player struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            *string      `json:"phone"`
	Position         string       `json:"position"`
	ShortPosition    string       `json:"short_position"`
	Frequency        int          `json:"frequency"`
	Status           PlayerStatus `json:"status"`
	EmergencyContact *string      `json:"emergency_contact"`
	MedicalNotes     *string      `json:"medical_notes"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// PlayerInput represents the body of a create request
type PlayerInput struct {
	Name             string       `json:"name" validate:"required,min=3,max=120"`
	Email            string       `json:"email" validate:"required,email,max=255"`
	Phone            *string      `json:"phone,omitempty"`
	Position         string       `json:"position" validate:"required,min=3,max=60"`
	ShortPosition    string       `json:"shortPosition" validate:"required,min=2,max=4"`
	Frequency        *int         `json:"frequency,omitempty" validate:"omitempty,min=0,max=100"`
	Status           PlayerStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	EmergencyContact *string      `json:"emergencyContact,omitempty"`
	MedicalNotes     *string      `json:"medicalNotes,omitempty"`
}

// PlayerUpdate represents a partial update; nil fields are left untouched
type PlayerUpdate struct {
	Name             *string       `json:"name,omitempty" validate:"omitempty,min=3,max=120"`
	Email            *string       `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone            *string       `json:"phone,omitempty"`
	Position         *string       `json:"position,omitempty" validate:"omitempty,min=3,max=60"`
	ShortPosition    *string       `json:"shortPosition,omitempty" validate:"omitempty,min=2,max=4"`
	Frequency        *int          `json:"frequency,omitempty" validate:"omitempty,min=0,max=100"`
	Status           *PlayerStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	EmergencyContact *string       `json:"emergencyContact,omitempty"`
	MedicalNotes     *string       `json:"medicalNotes,omitempty"`
}

// Apply merges the update into p. An empty phone clears it.
func (u *PlayerUpdate) Apply(p *Player) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		if *u.Phone == "" {
			p.Phone = nil
		} else {
			phone := *u.Phone
			p.Phone = &phone
		}
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	if u.ShortPosition != nil {
		p.ShortPosition = *u.ShortPosition
	}
	if u.Frequency != nil {
		p.Frequency = *u.Frequency
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.EmergencyContact != nil {
		contact := *u.EmergencyContact
		p.EmergencyContact = &contact
	}
	if u.MedicalNotes != nil {
		notes := *u.MedicalNotes
		p.MedicalNotes = &notes
	}
}

// PlayerStats summarizes the roster for the dashboard
type PlayerStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	HighFrequency int `json:"high_frequency"`
}

// NewPlayer builds a roster entry from a create request with its defaults applied
func (in *PlayerInput) NewPlayer() *Player {
	p := &Player{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Position:         in.Position,
		ShortPosition:    in.ShortPosition,
		Status:           in.Status,
		EmergencyContact: in.EmergencyContact,
		MedicalNotes:     in.MedicalNotes,
	}
	if in.Frequency != nil {
		p.Frequency = *in.Frequency
	}
	if p.Status == "" {
		p.Status = PlayerStatusActive
	}
	if p.Phone != nil && *p.Phone == "" {
		p.Phone = nil
	}
	return p
}
