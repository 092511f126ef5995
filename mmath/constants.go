package mmath

const (
	DefaultSlopeLimit       = 55.0
	DefaultStepOffset       = 0.5
	DefaultStepDownDistance = 0.5
	DefaultSkinWidth        = 0.005
	DefaultSizeLerpSpeed    = 8.0

	// DefaultPredictionDistance is the extra downward search window used by
	// ground prediction while airborne.
	DefaultPredictionDistance = 1.0

	// EdgeMinAngleDelta is the minimum difference between the two flanking
	// surface angles for a ground contact to count as an edge.
	EdgeMinAngleDelta = 0.5

	// WallAngleTolerance is how far from perpendicular-to-up a contact normal
	// may be while still counting as a wall.
	WallAngleTolerance = 10.0

	// HeadMinAngle is the minimum angle from up for a contact to count as a
	// head (ceiling) contact.
	HeadMinAngle = 100.0

	DefaultSlideIterations       = 5
	DefaultForceNotGroundedTicks = 3
)
