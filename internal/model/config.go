package model

// Config carries every tunable the pipeline uses. It is passed
// explicitly into each stage; no stage reads global state, so two runs
// with the same Config and input produce identical output.
type Config struct {
	Ambiguity   AmbiguityConfig   `yaml:"ambiguity" mapstructure:"ambiguity"`
	Compare     CompareConfig     `yaml:"compare" mapstructure:"compare"`
	Risk        RiskConfig        `yaml:"risk" mapstructure:"risk"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// AmbiguityConfig configures the per-clause vagueness signals.
// Weights are per-signal caps: a signal's contribution approaches its
// weight as occurrences grow but never reaches it, so no single signal
// can saturate the score on its own.
type AmbiguityConfig struct {
	VagueTerms                []string `yaml:"vague_terms" mapstructure:"vague_terms"`
	TimeSensitiveVerbs        []string `yaml:"time_sensitive_verbs" mapstructure:"time_sensitive_verbs"`
	WeightVagueQualifier      float64  `yaml:"weight_vague_qualifier" mapstructure:"weight_vague_qualifier"`
	WeightUndefinedTerm       float64  `yaml:"weight_undefined_term" mapstructure:"weight_undefined_term"`
	WeightUnresolvedCondition float64  `yaml:"weight_unresolved_condition" mapstructure:"weight_unresolved_condition"`
	WeightMissingDeadline     float64  `yaml:"weight_missing_deadline" mapstructure:"weight_missing_deadline"`
}

// CompareConfig configures clause alignment and divergence
// classification across documents.
type CompareConfig struct {
	AlignmentThreshold float64  `yaml:"alignment_threshold" mapstructure:"alignment_threshold"`
	LexicalWeight      float64  `yaml:"lexical_weight" mapstructure:"lexical_weight"`
	TypeMatchBonus     float64  `yaml:"type_match_bonus" mapstructure:"type_match_bonus"`
	StrictIndicators   []string `yaml:"strict_indicators" mapstructure:"strict_indicators"`
	LooseIndicators    []string `yaml:"loose_indicators" mapstructure:"loose_indicators"`
}

// SeverityWeights maps each severity bucket to its numeric weight in
// the risk score.
type SeverityWeights struct {
	Low      float64 `yaml:"low" mapstructure:"low"`
	Medium   float64 `yaml:"medium" mapstructure:"medium"`
	High     float64 `yaml:"high" mapstructure:"high"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// For returns the weight for a severity bucket.
func (w SeverityWeights) For(s Severity) float64 {
	switch s {
	case SeverityLow:
		return w.Low
	case SeverityMedium:
		return w.Medium
	case SeverityHigh:
		return w.High
	case SeverityCritical:
		return w.Critical
	}
	return w.Medium
}

// RiskConfig configures the conservative risk aggregation.
type RiskConfig struct {
	Severity          SeverityWeights `yaml:"severity" mapstructure:"severity"`
	PenaltyTerms      []string        `yaml:"penalty_terms" mapstructure:"penalty_terms"`
	SeverityFactor    float64         `yaml:"severity_factor" mapstructure:"severity_factor"`
	AmbiguityFactor   float64         `yaml:"ambiguity_factor" mapstructure:"ambiguity_factor"`
	DivergencePenalty float64         `yaml:"divergence_penalty" mapstructure:"divergence_penalty"`
	BaseUncertainty   float64         `yaml:"base_uncertainty" mapstructure:"base_uncertainty"`
	ConservativeBias  float64         `yaml:"conservative_bias" mapstructure:"conservative_bias"`
	ReviewThreshold   float64         `yaml:"review_threshold" mapstructure:"review_threshold"` // ambiguity at or above this forces legal review
}

// CacheConfig controls the analysis cache used by batch reports.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"` // disk layer; memory-only when empty
}

// ConcurrencyConfig bounds batch parallelism. Results are re-sorted
// after the pool drains, so worker count never affects output bytes.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the documented defaults. The similarity blend
// and signal weights are tunables with no canonical values; tests pin
// these defaults rather than assume a correct formula exists.
func DefaultConfig() *Config {
	return &Config{
		Ambiguity: AmbiguityConfig{
			VagueTerms: []string{
				"reasonable", "appropriate", "adequate", "sufficient",
				"material", "significant", "substantial", "promptly",
				"timely", "as soon as practicable", "good faith",
				"best efforts", "commercially reasonable", "duly",
				"properly", "as needed", "as appropriate",
			},
			TimeSensitiveVerbs: []string{
				"file", "report", "notify", "submit", "disclose",
				"deliver", "respond", "pay", "provide",
			},
			WeightVagueQualifier:      0.35,
			WeightUndefinedTerm:       0.30,
			WeightUnresolvedCondition: 0.25,
			WeightMissingDeadline:     0.30,
		},
		Compare: CompareConfig{
			AlignmentThreshold: 0.30,
			LexicalWeight:      0.70,
			TypeMatchBonus:     0.30,
			StrictIndicators: []string{
				"must", "shall", "required", "mandatory", "always",
				"never", "prohibited", "forbidden", "all", "every",
				"immediately", "without exception", "no exceptions",
				"under no circumstances",
			},
			LooseIndicators: []string{
				"may", "can", "optional", "generally", "typically",
				"usually", "at discretion", "good faith",
				"best efforts", "commercially reasonable",
				"as appropriate", "reasonable",
			},
		},
		Risk: RiskConfig{
			Severity: SeverityWeights{
				Low:      0.20,
				Medium:   0.45,
				High:     0.70,
				Critical: 0.90,
			},
			PenaltyTerms: []string{
				"penalty", "fine", "sanction", "revocation",
				"suspension", "criminal", "liable",
			},
			SeverityFactor:    0.60,
			AmbiguityFactor:   0.30,
			DivergencePenalty: 0.15,
			BaseUncertainty:   0.10,
			ConservativeBias:  0.25,
			ReviewThreshold:   0.20,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// Validate checks thresholds, weights, and vocabularies. A nil return
// means the pipeline can run; any problem is a ConfigError and must
// abort before the first document.
func (c *Config) Validate() error {
	check01 := func(field string, v float64) error {
		if v < 0 || v > 1 {
			return &ConfigError{Field: field, Reason: "must be in [0,1]"}
		}
		return nil
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"ambiguity.weight_vague_qualifier", c.Ambiguity.WeightVagueQualifier},
		{"ambiguity.weight_undefined_term", c.Ambiguity.WeightUndefinedTerm},
		{"ambiguity.weight_unresolved_condition", c.Ambiguity.WeightUnresolvedCondition},
		{"ambiguity.weight_missing_deadline", c.Ambiguity.WeightMissingDeadline},
		{"compare.alignment_threshold", c.Compare.AlignmentThreshold},
		{"compare.lexical_weight", c.Compare.LexicalWeight},
		{"compare.type_match_bonus", c.Compare.TypeMatchBonus},
		{"risk.severity.low", c.Risk.Severity.Low},
		{"risk.severity.medium", c.Risk.Severity.Medium},
		{"risk.severity.high", c.Risk.Severity.High},
		{"risk.severity.critical", c.Risk.Severity.Critical},
		{"risk.severity_factor", c.Risk.SeverityFactor},
		{"risk.ambiguity_factor", c.Risk.AmbiguityFactor},
		{"risk.divergence_penalty", c.Risk.DivergencePenalty},
		{"risk.base_uncertainty", c.Risk.BaseUncertainty},
		{"risk.conservative_bias", c.Risk.ConservativeBias},
		{"risk.review_threshold", c.Risk.ReviewThreshold},
	} {
		if err := check01(f.name, f.v); err != nil {
			return err
		}
	}

	// A weight of exactly 1 would let one signal saturate the score.
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"ambiguity.weight_vague_qualifier", c.Ambiguity.WeightVagueQualifier},
		{"ambiguity.weight_undefined_term", c.Ambiguity.WeightUndefinedTerm},
		{"ambiguity.weight_unresolved_condition", c.Ambiguity.WeightUnresolvedCondition},
		{"ambiguity.weight_missing_deadline", c.Ambiguity.WeightMissingDeadline},
	} {
		if f.v >= 1 {
			return &ConfigError{Field: f.name, Reason: "must be below 1 so no single signal dominates"}
		}
	}

	if len(c.Ambiguity.VagueTerms) == 0 {
		return &ConfigError{Field: "ambiguity.vague_terms", Reason: "vocabulary must not be empty"}
	}
	if c.Compare.AlignmentThreshold == 0 {
		return &ConfigError{Field: "compare.alignment_threshold", Reason: "must be above 0"}
	}
	if s := c.Risk.Severity; !(s.Low <= s.Medium && s.Medium <= s.High && s.High <= s.Critical) {
		return &ConfigError{Field: "risk.severity", Reason: "weights must be non-decreasing from low to critical"}
	}
	if c.Concurrency.Workers < 0 {
		return &ConfigError{Field: "concurrency.workers", Reason: "must not be negative"}
	}
	return nil
}
