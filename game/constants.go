package game

const (
	// MinTickTime is the smallest time step a physics routine is allowed to integrate.
	MinTickTime = float32(1e-6)
	// MaxSimulationIterations bounds how often a single tick may re-enter physics stepping
	// after a mode change.
	MaxSimulationIterations = 8

	// ParallelCosineThreshold is the minimum absolute cosine for two unit vectors to be
	// considered parallel (about one degree).
	ParallelCosineThreshold = float32(0.999845)

	// DefaultWalkableFloorAngle is the steepest floor, in degrees, that can be stood on.
	DefaultWalkableFloorAngle = float32(44.765)
)
