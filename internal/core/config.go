package core

// RuntimeConfig contains settings for the host loop that drives level ticks.
type RuntimeConfig struct {
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
	}
}

// TickDelta returns the length of one tick in seconds.
// Non-positive tick rates fall back to the default rate.
func (c RuntimeConfig) TickDelta() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	return 1.0 / float64(rate)
}
