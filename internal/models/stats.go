package models

// FrequencyStat holds the occurrence count and percentage of one number
// across the analyzed history. Recomputed per query, never stored.
type FrequencyStat struct {
	Number     int     `json:"number"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DelayStat holds the recency of one number: the 0-based position of its
// most recent occurrence in the newest-first history. Numbers never observed
// carry no delay stat.
type DelayStat struct {
	Number int `json:"number"`
	Delay  int `json:"delay"`
}

// CoOccurrencePair describes how often an unordered number pair (A < B)
// appears together relative to what independent marginals would predict.
// LiftScore is tanh(lift-1): bounded in (-1,1) and zero at independence.
type CoOccurrencePair struct {
	NumberA              int     `json:"number_a"`
	NumberB              int     `json:"number_b"`
	ObservedCount        int     `json:"observed_count"`
	ObservedFrequencyPct float64 `json:"observed_frequency_pct"`
	ExpectedFrequencyPct float64 `json:"expected_frequency_pct"`
	Lift                 float64 `json:"lift"`
	LiftScore            float64 `json:"lift_score"`
}

// InfluenceScore is a per-number ranking weight blending historical and
// recent frequency with a negative-feedback penalty. NormalizedScore values
// sum to 100 across a game's range. It is not, and must never be presented
// as, a probability that the number is drawn.
type InfluenceScore struct {
	Number                 int     `json:"number"`
	HistoricalFrequencyPct float64 `json:"historical_frequency_pct"`
	RecentFrequencyPct     float64 `json:"recent_frequency_pct"`
	UnsuccessfulPenalty    float64 `json:"unsuccessful_penalty"`
	RawScore               float64 `json:"raw_score"`
	NormalizedScore        float64 `json:"normalized_score"`
	Confidence             float64 `json:"confidence"`
}

// DistributionProfile captures the structural shape of a number set.
type DistributionProfile struct {
	Sum                 int     `json:"sum"`
	Spread              int     `json:"spread"`
	EvenOddRatio        float64 `json:"even_odd_ratio"`
	DecadeBuckets       []int   `json:"decade_buckets"`
	ConsecutiveRunCount int     `json:"consecutive_run_count"`
	Gaps                []int   `json:"gaps"`
	AverageGap          float64 `json:"average_gap"`
	Density             float64 `json:"density"`
}

// TargetProfile is the heuristic design target derived from a game profile.
// The values are policy, not statistically derived optima.
type TargetProfile struct {
	Sum                 float64 `json:"sum"`
	Spread              float64 `json:"spread"`
	EvenOddRatio        float64 `json:"even_odd_ratio"`
	DecadePerBucket     float64 `json:"decade_per_bucket"`
	ConsecutiveRunCount float64 `json:"consecutive_run_count"`
	AverageGap          float64 `json:"average_gap"`
	Density             float64 `json:"density"`
}

// ImpactScore is the descriptive back-test of a fixed combination against
// history: the normalized histogram of match counts, its mean, and a
// quadratically weighted summary. Exploratory only, never predictive.
type ImpactScore struct {
	MatchDistribution []float64 `json:"match_distribution"`
	ExpectedMatches   float64   `json:"expected_matches"`
	ImpactScore       float64   `json:"impact_score"`
}
