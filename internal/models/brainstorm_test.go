package models

import (
	"errors"
	"testing"
)

func TestNewBrainstormSession(t *testing.T) {
	s := NewBrainstormSession("Roadmap")
	if s.Name != "Roadmap" {
		t.Errorf("expected name %q, got %q", "Roadmap", s.Name)
	}
	if s.DateCreated.IsZero() {
		t.Error("expected DateCreated to be set")
	}
	if s.ID != 0 {
		t.Errorf("expected unassigned ID, got %d", s.ID)
	}
	if len(s.Ideas) != 0 {
		t.Errorf("expected no ideas, got %d", len(s.Ideas))
	}
}

func TestSessionValidate(t *testing.T) {
	cases := []struct {
		name string
		want error
	}{
		{"Roadmap", nil},
		{"", ErrInvalidSession},
		{"   ", ErrInvalidSession},
	}
	for _, tc := range cases {
		s := NewBrainstormSession(tc.name)
		if err := s.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("Validate(%q) = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestIdeaValidate(t *testing.T) {
	cases := []struct {
		idea Idea
		want error
	}{
		{NewIdea("Name", "Description"), nil},
		{NewIdea("", "Description"), ErrInvalidIdea},
		{NewIdea("Name", ""), ErrInvalidIdea},
	}
	for _, tc := range cases {
		if err := tc.idea.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("Validate(%+v) = %v, want %v", tc.idea, err, tc.want)
		}
	}
}

func TestCloneDoesNotShareIdeas(t *testing.T) {
	s := NewBrainstormSession("Roadmap")
	s.AddIdea(NewIdea("one", "first"))

	c := s.Clone()
	c.AddIdea(NewIdea("two", "second"))
	c.Ideas[0].Name = "changed"

	if len(s.Ideas) != 1 {
		t.Fatalf("expected original to keep 1 idea, got %d", len(s.Ideas))
	}
	if s.Ideas[0].Name != "one" {
		t.Errorf("expected original idea name %q, got %q", "one", s.Ideas[0].Name)
	}
}

func TestCloneNil(t *testing.T) {
	var s *BrainstormSession
	if s.Clone() != nil {
		t.Error("expected nil clone of nil session")
	}
}
