// Package boss defines the immutable boss catalog: archetypes, their skill
// tables and the tuning numbers the battle resolver reads.
package boss

import (
	"errors"
	"fmt"
)

// ErrUnknownArchetype is returned when an archetype tag is not a member of the
// closed Archetype set.
var ErrUnknownArchetype = errors.New("unknown boss archetype")

// Archetype identifies one of the scripted boss opponents.
// The zero value is intentionally invalid.
type Archetype int

const (
	ArchetypeUnknown Archetype = iota // zero value; intentionally invalid
	Belial
	Bazuzu
	Atlas
)

// Archetypes returns every valid archetype in declaration order.
//
// Postcondition: the returned slice is a fresh allocation.
func Archetypes() []Archetype {
	return []Archetype{Belial, Bazuzu, Atlas}
}

// String returns the canonical lower-case tag of the archetype.
func (a Archetype) String() string {
	switch a {
	case Belial:
		return "belial"
	case Bazuzu:
		return "bazuzu"
	case Atlas:
		return "atlas"
	default:
		return "unknown"
	}
}

// Valid reports whether a is a member of the closed archetype set.
func (a Archetype) Valid() bool {
	switch a {
	case Belial, Bazuzu, Atlas:
		return true
	default:
		return false
	}
}

// ParseArchetype converts a tag produced by String back into an Archetype.
//
// Postcondition: returns ErrUnknownArchetype (wrapped) for any other input.
func ParseArchetype(tag string) (Archetype, error) {
	for _, a := range Archetypes() {
		if a.String() == tag {
			return a, nil
		}
	}
	return ArchetypeUnknown, fmt.Errorf("%w: %q", ErrUnknownArchetype, tag)
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArchetype, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
