package chunker

// Config holds the splitting parameters shared by all strategies.
type Config struct {
	// ChunkSize is the recursive splitter's target chunk length in characters.
	ChunkSize int

	// ChunkOverlap is carried from the tail of one chunk into the next.
	ChunkOverlap int

	// SemanticThreshold is the aggregate prose size, in characters, above
	// which topic-boundary splitting is attempted.
	SemanticThreshold int

	// MaxRowChars caps a table row's length; longer rows are truncated.
	MaxRowChars int

	// BreakpointPercentile selects the adjacent-sentence distance above
	// which the topic-boundary splitter cuts.
	BreakpointPercentile float64
}

// ConfigOption mutates a Config.
type ConfigOption func(*Config)

// WithChunkSize overrides the recursive splitter's target chunk size.
func WithChunkSize(n int) ConfigOption {
	return func(c *Config) { c.ChunkSize = n }
}

// WithChunkOverlap overrides the recursive splitter's overlap.
func WithChunkOverlap(n int) ConfigOption {
	return func(c *Config) { c.ChunkOverlap = n }
}

// WithSemanticThreshold overrides the prose size gate for topic-boundary
// splitting.
func WithSemanticThreshold(n int) ConfigOption {
	return func(c *Config) { c.SemanticThreshold = n }
}

// WithMaxRowChars overrides the table row truncation limit.
func WithMaxRowChars(n int) ConfigOption {
	return func(c *Config) { c.MaxRowChars = n }
}

// WithBreakpointPercentile overrides the topic-boundary cut percentile.
func WithBreakpointPercentile(p float64) ConfigOption {
	return func(c *Config) { c.BreakpointPercentile = p }
}

// DefaultConfig returns the standard splitting parameters.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:            1000,
		ChunkOverlap:         200,
		SemanticThreshold:    3000,
		MaxRowChars:          2000,
		BreakpointPercentile: 95,
	}
}
