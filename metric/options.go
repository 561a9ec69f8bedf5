package metric

import "log/slog"

// Option configures a scorer.
type Option func(*config)

type config struct {
	// BLEU
	maxOrder int

	// chrF
	charOrder int
	beta      float64

	// TER
	maxShiftSize       int
	maxShiftIterations int
	maxShiftCandidates int

	// METEOR
	alpha      float64
	fragBeta   float64
	fragWeight float64

	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		maxOrder:           4,
		charOrder:          6,
		beta:               2,
		maxShiftSize:       10,
		maxShiftIterations: 50,
		maxShiftCandidates: 1000,
		alpha:              0.9,
		fragBeta:           3,
		fragWeight:         0.5,
		logger:             slog.Default(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxOrder sets the highest BLEU n-gram order (default: 4).
func WithMaxOrder(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxOrder = n
		}
	}
}

// WithCharOrder sets the highest chrF character n-gram order (default: 6).
func WithCharOrder(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.charOrder = n
		}
	}
}

// WithBeta sets the chrF recall weight (default: 2).
func WithBeta(b float64) Option {
	return func(c *config) {
		if b > 0 {
			c.beta = b
		}
	}
}

// WithMaxShiftSize sets the longest block TER may shift (default: 10).
func WithMaxShiftSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxShiftSize = n
		}
	}
}

// WithMaxShiftIterations caps the TER greedy shift search per sentence (default: 50).
func WithMaxShiftIterations(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxShiftIterations = n
		}
	}
}

// WithMaxShiftCandidates caps the shift candidates TER evaluates per
// iteration (default: 1000).
func WithMaxShiftCandidates(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxShiftCandidates = n
		}
	}
}

// WithMETEORParams sets the METEOR precision weight alpha, fragmentation
// exponent beta and penalty weight gamma (default: 0.9, 3, 0.5).
func WithMETEORParams(alpha, beta, gamma float64) Option {
	return func(c *config) {
		if alpha > 0 && alpha < 1 {
			c.alpha = alpha
		}
		if beta > 0 {
			c.fragBeta = beta
		}
		if gamma >= 0 && gamma <= 1 {
			c.fragWeight = gamma
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
