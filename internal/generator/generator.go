// Package generator synthesizes candidate combinations from the analysis
// statistics under named mixing strategies, with soft structural filters and
// a bounded resampling loop. Randomness is an injected source so that a
// fixed seed replays the exact same candidates.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/draw-advisor/internal/analysis"
	"github.com/yourusername/draw-advisor/internal/models"
)

// Strategy names a fixed pool-mixing policy.
type Strategy string

const (
	// StrategyStandard draws 60% of picks from the frequent pool, 30% from
	// the most-delayed pool, and the rest uniformly from the full range.
	StrategyStandard Strategy = "standard"
	// StrategyHighVariability draws 40% from the infrequent pool and the
	// rest uniformly from the full range.
	StrategyHighVariability Strategy = "high_variability"
)

// ParseStrategy resolves a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyStandard, StrategyHighVariability:
		return Strategy(name), nil
	default:
		return "", fmt.Errorf("unknown generation strategy: %s", name)
	}
}

// Config carries the generator policy constants. The mixing ratios and pool
// size are long-standing policy without documented derivation, exposed as
// configuration rather than tuned here.
type Config struct {
	Strategy Strategy
	// PoolSize is the size of the frequent/infrequent/delayed pools.
	PoolSize int
	// MaxAttempts bounds the resampling loop. On exhaustion the last
	// candidate is accepted and flagged, never blocked on.
	MaxAttempts int
	// MaxConsecutiveRuns is the soft tolerance for runs of consecutive
	// numbers; the default 0 retries on any run of length two or more.
	MaxConsecutiveRuns int
	// UnluckyPairMinCount is the occurrence threshold at which a pair from
	// the unsuccessful set is treated as a pair to avoid.
	UnluckyPairMinCount int
	// AttachScores controls whether fitness/influence transparency metadata
	// is attached to the candidate.
	AttachScores bool
}

// DefaultConfig returns the standard generation policy.
func DefaultConfig() Config {
	return Config{
		Strategy:            StrategyStandard,
		PoolSize:            10,
		MaxAttempts:         50,
		MaxConsecutiveRuns:  0,
		UnluckyPairMinCount: 3,
		AttachScores:        true,
	}
}

// Generator synthesizes candidates for one game. It holds no state across
// Generate calls beyond the injected random source.
type Generator struct {
	game        *models.GameProfile
	cfg         Config
	analysisCfg analysis.Config
	rng         *rand.Rand
	seed        int64
	logger      *logrus.Logger
}

// New creates a generator with an explicit seed. The same seed, history, and
// configuration reproduce the same candidates.
func New(game *models.GameProfile, cfg Config, analysisCfg analysis.Config, seed int64, logger *logrus.Logger) (*Generator, error) {
	if game == nil {
		return nil, fmt.Errorf("game profile is required")
	}
	if _, err := ParseStrategy(string(cfg.Strategy)); err != nil {
		return nil, err
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultConfig().PoolSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.UnluckyPairMinCount <= 0 {
		cfg.UnluckyPairMinCount = DefaultConfig().UnluckyPairMinCount
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Generator{
		game:        game,
		cfg:         cfg,
		analysisCfg: analysisCfg.Normalized(),
		rng:         rand.New(rand.NewSource(seed)),
		seed:        seed,
		logger:      logger,
	}, nil
}

// Generate synthesizes one candidate combination. The loop regenerates from
// scratch when a soft filter rejects a candidate, up to the configured
// ceiling; the last candidate is then accepted with SoftFilterViolated set.
func (g *Generator) Generate(history []*models.DrawRecord, unsuccessful []*models.UnsuccessfulCombination, variant string) (*models.CandidateCombination, error) {
	frequencies := analysis.Frequencies(history, g.game, variant)
	delays := analysis.Delays(history, g.game, variant)

	frequentPool := numbersOf(analysis.TopFrequent(frequencies, g.cfg.PoolSize))
	infrequentPool := numbersOf(analysis.TopInfrequent(frequencies, g.cfg.PoolSize))
	delayedPool := delayedNumbersOf(analysis.MostDelayed(delays, g.cfg.PoolSize))

	unluckySets := make(map[string]bool, len(unsuccessful))
	for _, combo := range unsuccessful {
		unluckySets[models.NumbersKey(combo.Numbers)] = true
	}
	unluckyPairs := collectUnluckyPairs(unsuccessful, g.cfg.UnluckyPairMinCount)

	var numbers []int
	attempts := 0
	violated := false
	for attempts < g.cfg.MaxAttempts {
		attempts++
		numbers = g.assemble(frequentPool, infrequentPool, delayedPool)
		if g.passesSoftFilters(numbers, unluckySets, unluckyPairs) {
			violated = false
			break
		}
		violated = true
	}

	candidate := &models.CandidateCombination{
		ID:      uuid.New(),
		GameID:  g.game.ID,
		Numbers: numbers,
		Metadata: models.GenerationMetadata{
			Strategy:           string(g.cfg.Strategy),
			Attempts:           attempts,
			SoftFilterViolated: violated,
			Seed:               g.seed,
			GeneratedAt:        time.Now(),
		},
	}

	if g.game.Supplementary != nil {
		candidate.Supplementary = g.sampleUniform(g.game.Supplementary.NumberRange, g.game.Supplementary.Count, nil)
		sort.Ints(candidate.Supplementary)
	}

	if g.cfg.AttachScores {
		influences := analysis.InfluenceScores(history, unsuccessful, g.game, variant, g.analysisCfg)
		profile := analysis.Distribution(numbers, g.game.NumberRange)
		fitness := analysis.Fitness(profile, analysis.TargetProfile(g.game), influences, numbers, g.game)
		candidate.FitnessScore = &fitness.Score
		candidate.MeanInfluence = &fitness.MeanInfluence
	}

	g.logger.WithFields(logrus.Fields{
		"game":                 g.game.Name,
		"strategy":             g.cfg.Strategy,
		"attempts":             attempts,
		"soft_filter_violated": violated,
	}).Debug("Candidate combination generated")

	return candidate, nil
}

// assemble builds one pickCount-sized set according to the strategy's
// mixing ratios. Selection within a pool samples without replacement;
// duplicates across pools are skipped and refilled uniformly.
func (g *Generator) assemble(frequentPool, infrequentPool, delayedPool []int) []int {
	picked := make(map[int]bool, g.game.PickCount)

	switch g.cfg.Strategy {
	case StrategyHighVariability:
		infrequentCount := g.game.PickCount * 40 / 100
		g.takeFromPool(infrequentPool, infrequentCount, picked)
	default:
		frequentCount := g.game.PickCount * 60 / 100
		delayedCount := g.game.PickCount * 30 / 100
		g.takeFromPool(frequentPool, frequentCount, picked)
		g.takeFromPool(delayedPool, delayedCount, picked)
	}

	// Fill the remainder uniformly from the full range.
	remainder := g.sampleUniform(g.game.NumberRange, g.game.PickCount-len(picked), picked)
	for _, n := range remainder {
		picked[n] = true
	}

	numbers := make([]int, 0, len(picked))
	for n := range picked {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// takeFromPool samples up to count distinct numbers from the pool without
// replacement, skipping numbers already picked.
func (g *Generator) takeFromPool(pool []int, count int, picked map[int]bool) {
	if count <= 0 || len(pool) == 0 {
		return
	}
	shuffled := append([]int{}, pool...)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	taken := 0
	for _, n := range shuffled {
		if taken >= count {
			return
		}
		if picked[n] {
			continue
		}
		picked[n] = true
		taken++
	}
}

// sampleUniform draws count distinct numbers from [1,numberRange] that are
// not in exclude.
func (g *Generator) sampleUniform(numberRange, count int, exclude map[int]bool) []int {
	result := make([]int, 0, count)
	chosen := make(map[int]bool, count)
	for len(result) < count {
		n := g.rng.Intn(numberRange) + 1
		if chosen[n] || (exclude != nil && exclude[n]) {
			continue
		}
		chosen[n] = true
		result = append(result, n)
	}
	return result
}

// passesSoftFilters applies the structural rejection rules: too many
// consecutive runs, an exact match of a known unsuccessful set, or a known
// high-count unlucky pair.
func (g *Generator) passesSoftFilters(numbers []int, unluckySets map[string]bool, unluckyPairs map[[2]int]bool) bool {
	profile := analysis.Distribution(numbers, g.game.NumberRange)
	if profile.ConsecutiveRunCount > g.cfg.MaxConsecutiveRuns {
		return false
	}
	if unluckySets[models.NumbersKey(numbers)] {
		return false
	}
	for i := 0; i < len(numbers); i++ {
		for j := i + 1; j < len(numbers); j++ {
			if unluckyPairs[[2]int{numbers[i], numbers[j]}] {
				return false
			}
		}
	}
	return true
}

// collectUnluckyPairs counts pairs across the unsuccessful set and keeps the
// ones seen at least minCount times.
func collectUnluckyPairs(unsuccessful []*models.UnsuccessfulCombination, minCount int) map[[2]int]bool {
	counts := make(map[[2]int]int)
	for _, combo := range unsuccessful {
		for i := 0; i < len(combo.Numbers); i++ {
			for j := i + 1; j < len(combo.Numbers); j++ {
				a, b := combo.Numbers[i], combo.Numbers[j]
				if a > b {
					a, b = b, a
				}
				counts[[2]int{a, b}]++
			}
		}
	}
	pairs := make(map[[2]int]bool)
	for pair, count := range counts {
		if count >= minCount {
			pairs[pair] = true
		}
	}
	return pairs
}

func numbersOf(stats []models.FrequencyStat) []int {
	numbers := make([]int, len(stats))
	for i, s := range stats {
		numbers[i] = s.Number
	}
	return numbers
}

func delayedNumbersOf(stats []models.DelayStat) []int {
	numbers := make([]int, len(stats))
	for i, s := range stats {
		numbers[i] = s.Number
	}
	return numbers
}
