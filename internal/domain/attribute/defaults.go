package attribute

// Partition names.
const (
	PartitionOutfield   = "outfield"
	PartitionGoalkeeper = "goalkeeper"
)

// DefaultOutfieldCategories is the outfield meta-category layout.
func DefaultOutfieldCategories() []Category {
	return []Category{
		{Name: "Extremely Important", Weight: 8.0, Attributes: []Name{Pace, Acceleration}},
		{Name: "Important", Weight: 4.0, Attributes: []Name{JumpingReach, Anticipation, Balance, Agility, Concentration, Finishing}},
		{Name: "Good", Weight: 2.0, Attributes: []Name{WorkRate, Dribbling, Stamina, Strength, Passing, Determination, Vision}},
		{Name: "Decent", Weight: 1.0, Attributes: []Name{LongShots, Marking, Decisions, FirstTouch}},
		{Name: "Almost Irrelevant", Weight: 0.2, Attributes: []Name{OffTheBall, Tackling, Teamwork, Composure, Technique, Positioning}},
	}
}

// DefaultGoalkeeperCategories is the goalkeeper meta-category layout.
func DefaultGoalkeeperCategories() []Category {
	return []Category{
		{Name: "Top Importance", Weight: 10.0, Attributes: []Name{Agility}},
		{Name: "High Importance", Weight: 8.0, Attributes: []Name{AerialReach, Reflexes}},
		{Name: "Medium Importance", Weight: 6.0, Attributes: []Name{CommandOfArea, Handling, OneVsOne}},
	}
}

// DefaultOutfield builds the default outfield partition.
func DefaultOutfield() *Partition {
	p, err := NewPartition(PartitionOutfield, DefaultOutfieldCategories())
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultGoalkeeper builds the default goalkeeper partition.
func DefaultGoalkeeper() *Partition {
	p, err := NewPartition(PartitionGoalkeeper, DefaultGoalkeeperCategories())
	if err != nil {
		panic(err)
	}
	return p
}
