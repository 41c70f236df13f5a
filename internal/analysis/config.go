// Package analysis implements the statistical engine over draw history:
// exact combinatorics, frequency/delay/co-occurrence statistics, influence
// ranking, distribution shape metrics, fitness scoring, and historical
// impact back-testing. Every function is a pure function of its inputs.
//
// None of the scores produced here is a probability of winning. Every
// fixed-size combination drawn from a uniform range has exactly the same
// true probability of matching a uniformly random draw.
package analysis

// Config carries the policy constants of the analyzers. The defaults are
// carried from long-standing practice without documented derivation, which
// is why they are configuration rather than hard-coded values.
type Config struct {
	// RecentWindow is the number of newest draws used for recent frequency.
	RecentWindow int
	// TopPoolSize is the size of the frequent/infrequent/delayed top lists.
	TopPoolSize int
	// MinPairOccurrences discards co-occurring pairs seen fewer times as noise.
	MinPairOccurrences int
	// PairExpectedFloor guards the expected pair frequency against zero.
	PairExpectedFloor float64
	// TopPairWindow is the default truncation of the co-occurrence ranking.
	TopPairWindow int
}

// DefaultConfig returns the standard analyzer policy constants.
func DefaultConfig() Config {
	return Config{
		RecentWindow:       20,
		TopPoolSize:        10,
		MinPairOccurrences: 3,
		PairExpectedFloor:  0.0001,
		TopPairWindow:      20,
	}
}

// Normalized fills zero or negative fields with defaults so a partially
// populated config behaves predictably.
func (c Config) Normalized() Config {
	def := DefaultConfig()
	if c.RecentWindow <= 0 {
		c.RecentWindow = def.RecentWindow
	}
	if c.TopPoolSize <= 0 {
		c.TopPoolSize = def.TopPoolSize
	}
	if c.MinPairOccurrences <= 0 {
		c.MinPairOccurrences = def.MinPairOccurrences
	}
	if c.PairExpectedFloor <= 0 {
		c.PairExpectedFloor = def.PairExpectedFloor
	}
	if c.TopPairWindow <= 0 {
		c.TopPairWindow = def.TopPairWindow
	}
	return c
}
