// Package types contains common types used across the application
package types

import (
	"fmt"
	"strings"
)

// Foot is a player's preferred foot.
type Foot string

// Preferred foot values.
const (
	FootLeft   Foot = "Left"
	FootRight  Foot = "Right"
	FootEither Foot = "Either"
)

// ParseFoot accepts left/right/either (case-insensitive). Empty input is Either.
func ParseFoot(s string) (Foot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return FootLeft, nil
	case "right", "r":
		return FootRight, nil
	case "", "either", "both":
		return FootEither, nil
	default:
		return "", fmt.Errorf("unknown preferred foot %q", s)
	}
}

// Matches reports whether the foot suits the given side of the pitch.
// Either-footed players suit both sides; nothing matches SideNone.
func (f Foot) Matches(side Side) bool {
	switch side {
	case SideLeft:
		return f == FootLeft || f == FootEither
	case SideRight:
		return f == FootRight || f == FootEither
	default:
		return false
	}
}

// Side is the flank a position code points at.
type Side int

// Flanks.
const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Position is a tactical position code such as GK, DCL, WBR or STC.
type Position string

// PositionGoalkeeper is the only goalkeeping position code.
const PositionGoalkeeper Position = "GK"

// Normalize upper-cases and trims the code.
func (p Position) Normalize() Position {
	return Position(strings.ToUpper(strings.TrimSpace(string(p))))
}

// Side derives the flank from the trailing side indicator of the code.
// DL, DCL and AML are left; DR, DCR and AMR are right; DC, DMC and ST are central.
func (p Position) Side() Side {
	code := p.Normalize()
	if len(code) < 2 {
		return SideNone
	}
	switch code[len(code)-1] {
	case 'L':
		return SideLeft
	case 'R':
		return SideRight
	default:
		return SideNone
	}
}

// IsGoalkeeper reports whether the code is the goalkeeper position.
func (p Position) IsGoalkeeper() bool {
	return p.Normalize() == PositionGoalkeeper
}
