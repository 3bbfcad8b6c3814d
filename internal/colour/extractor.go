package colour

import (
	"fmt"
	"image"
	"slices"
)

// Extractor reduces an image to a weighted palette.
type Extractor interface {
	// Extract returns at most count colours, most dominant first.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm names an extraction method.
type Algorithm string

// AlgorithmKMeans clusters sampled pixels with k-means++ seeding.
const AlgorithmKMeans Algorithm = "kmeans"

// MaxColours bounds the palette size an extractor accepts.
const MaxColours = 256

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans}
}

// ExtractorConfig selects and tunes an extractor.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
	// Seed makes extraction reproducible when non-zero.
	Seed uint64
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmKMeans,
		ColorCount: 12,
	}
}

// Validate checks the algorithm name and colour count.
func (c ExtractorConfig) Validate() error {
	if !slices.Contains(ValidAlgorithms(), c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if c.ColorCount < 1 || c.ColorCount > MaxColours {
		return fmt.Errorf("color count %d out of range [1,%d]", c.ColorCount, MaxColours)
	}
	return nil
}

// NewExtractor builds the extractor c describes. ColorCount is not
// checked here; it is passed to Extract.
func NewExtractor(c ExtractorConfig) (Extractor, error) {
	switch c.Algorithm {
	case AlgorithmKMeans:
		e := NewKMeansExtractor()
		if c.Seed != 0 {
			e.WithSeed(c.Seed)
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
}
