// Package attribute defines player attributes and the weighted meta
// categories they are grouped into for DWRS scoring.
package attribute

// Name identifies a player attribute, e.g. "Pace" or "Jumping Reach".
type Name string

// Attribute value bounds (inclusive).
const (
	MinValue = 1
	MaxValue = 20
)

// Outfield and goalkeeping attributes.
const (
	Acceleration  Name = "Acceleration"
	Aggression    Name = "Aggression"
	Agility       Name = "Agility"
	Anticipation  Name = "Anticipation"
	Balance       Name = "Balance"
	Bravery       Name = "Bravery"
	Composure     Name = "Composure"
	Concentration Name = "Concentration"
	Corners       Name = "Corners"
	Crossing      Name = "Crossing"
	Decisions     Name = "Decisions"
	Determination Name = "Determination"
	Dribbling     Name = "Dribbling"
	Finishing     Name = "Finishing"
	FirstTouch    Name = "First Touch"
	Flair         Name = "Flair"
	Heading       Name = "Heading"
	JumpingReach  Name = "Jumping Reach"
	Leadership    Name = "Leadership"
	LongShots     Name = "Long Shots"
	Marking       Name = "Marking"
	OffTheBall    Name = "Off the Ball"
	Pace          Name = "Pace"
	Passing       Name = "Passing"
	Positioning   Name = "Positioning"
	Stamina       Name = "Stamina"
	Strength      Name = "Strength"
	Tackling      Name = "Tackling"
	Teamwork      Name = "Teamwork"
	Technique     Name = "Technique"
	Vision        Name = "Vision"
	WorkRate      Name = "Work Rate"

	AerialReach    Name = "Aerial Reach"
	CommandOfArea  Name = "Command of Area"
	Communication  Name = "Communication"
	Eccentricity   Name = "Eccentricity"
	Handling       Name = "Handling"
	Kicking        Name = "Kicking"
	OneVsOne       Name = "One vs One"
	Reflexes       Name = "Reflexes"
	RushingOut     Name = "Rushing Out (Tendency)"
	Throwing       Name = "Throwing"
	Punching       Name = "Punching (Tendency)"
	NaturalFitness Name = "Natural Fitness"
)

var known = func() map[Name]struct{} {
	all := []Name{
		Acceleration, Aggression, Agility, Anticipation, Balance, Bravery, Composure,
		Concentration, Corners, Crossing, Decisions, Determination, Dribbling, Finishing,
		FirstTouch, Flair, Heading, JumpingReach, Leadership, LongShots, Marking, OffTheBall,
		Pace, Passing, Positioning, Stamina, Strength, Tackling, Teamwork, Technique, Vision,
		WorkRate, AerialReach, CommandOfArea, Communication, Eccentricity, Handling, Kicking,
		OneVsOne, Reflexes, RushingOut, Throwing, Punching, NaturalFitness,
	}
	m := make(map[Name]struct{}, len(all))
	for _, n := range all {
		m[n] = struct{}{}
	}
	return m
}()

// Known reports whether n is part of the fixed attribute universe.
func Known(n Name) bool {
	_, ok := known[n]
	return ok
}

// InRange reports whether v is a legal attribute value.
func InRange(v int) bool {
	return v >= MinValue && v <= MaxValue
}
