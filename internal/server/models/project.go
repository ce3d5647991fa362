package models

import "github.com/dmitrijs2005/projecthub/internal/common"

// Project groups documents and participants under an owner. The owner is
// never part of the participant set; access checks treat the two uniformly.
type Project struct {
	ID           int64
	Name         string
	Description  string
	OwnerID      int64
	Participants []int64
}

// NewProject constructs a project with an empty participant set.
func NewProject(name, description string, ownerID int64) (*Project, error) {
	if name == "" {
		return nil, common.ErrEmptyName
	}
	if description == "" {
		return nil, common.ErrEmptyDescription
	}
	if ownerID <= 0 {
		return nil, common.ErrInvalidUser
	}
	return &Project{Name: name, Description: description, OwnerID: ownerID}, nil
}

// AddParticipant appends userID to the participant set. The check here is
// advisory: under concurrent calls the storage-level uniqueness constraint
// is the authoritative guard.
func (p *Project) AddParticipant(userID int64) error {
	if userID <= 0 {
		return common.ErrInvalidUser
	}
	if userID == p.OwnerID {
		return common.ErrOwnerParticipant
	}
	if p.isParticipant(userID) {
		return common.ErrAlreadyParticipant
	}
	p.Participants = append(p.Participants, userID)
	return nil
}

// RemoveParticipant removes userID from the participant set.
func (p *Project) RemoveParticipant(userID int64) error {
	if userID <= 0 {
		return common.ErrInvalidUser
	}
	for i, id := range p.Participants {
		if id == userID {
			p.Participants = append(p.Participants[:i], p.Participants[i+1:]...)
			return nil
		}
	}
	return common.ErrNotParticipant
}

// Rename replaces the project name, rejecting a no-op or empty value.
func (p *Project) Rename(newName string) error {
	if newName == p.Name {
		return common.ErrNoChange
	}
	if newName == "" {
		return common.ErrEmptyName
	}
	p.Name = newName
	return nil
}

// Redescribe replaces the project description, rejecting a no-op or empty value.
func (p *Project) Redescribe(newDescription string) error {
	if newDescription == p.Description {
		return common.ErrNoChange
	}
	if newDescription == "" {
		return common.ErrEmptyDescription
	}
	p.Description = newDescription
	return nil
}

// IsOwner reports whether userID owns the project.
func (p *Project) IsOwner(userID int64) bool {
	return userID == p.OwnerID
}

// HasAccess reports whether userID may read the project: the owner and every
// participant have access. Callers that need to enforce access should use
// RequireAccess instead of branching on this result.
func (p *Project) HasAccess(userID int64) bool {
	return p.IsOwner(userID) || p.isParticipant(userID)
}

// RequireAccess fails with ErrAccessDenied when userID has no access rights.
func (p *Project) RequireAccess(userID int64) error {
	if !p.HasAccess(userID) {
		return common.ErrAccessDenied
	}
	return nil
}

func (p *Project) isParticipant(userID int64) bool {
	for _, id := range p.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
