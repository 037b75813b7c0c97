package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrSessionNotFound = errors.New("brainstorm session not found")
	ErrInvalidSession  = errors.New("invalid brainstorm session")
	ErrInvalidIdea     = errors.New("invalid idea")
)

// BrainstormSession represents an ideation session and the ideas collected in it
type BrainstormSession struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"dateCreated"`
	Ideas       []Idea    `json:"ideas"`
}

// Idea is a single entry recorded inside a session
type Idea struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
}

// NewBrainstormSession creates a new brainstorm session
func NewBrainstormSession(name string) *BrainstormSession {
	return &BrainstormSession{
		Name:        name,
		DateCreated: time.Now(),
		Ideas:       []Idea{},
	}
}

// NewIdea creates a new idea stamped with the current time
func NewIdea(name, description string) Idea {
	return Idea{
		Name:        name,
		Description: description,
		DateCreated: time.Now(),
	}
}

// AddIdea appends an idea to the session
func (s *BrainstormSession) AddIdea(idea Idea) {
	s.Ideas = append(s.Ideas, idea)
}

func (s *BrainstormSession) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidSession
	}
	return nil
}

func (i Idea) Validate() error {
	if strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Description) == "" {
		return ErrInvalidIdea
	}
	return nil
}

// Clone returns a deep copy so stores never hand out shared idea slices.
func (s *BrainstormSession) Clone() *BrainstormSession {
	if s == nil {
		return nil
	}
	c := *s
	c.Ideas = make([]Idea, len(s.Ideas))
	copy(c.Ideas, s.Ideas)
	return &c
}
