package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"slices"
)

const (
	// maxSamples caps the pixels read from one image.
	maxSamples = 4000

	// minAlpha skips pixels that are mostly transparent.
	minAlpha = 0x8000
)

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	rng           *rand.Rand
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 30,
		convergence:   1.0,
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithSeed makes the k-means++ seeding reproducible.
func (e *KMeansExtractor) WithSeed(seed uint64) *KMeansExtractor {
	e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return e
}

// swatch is a distinct sampled colour and how many samples carried it.
type swatch struct {
	rgb   RGB
	pos   vec3
	count float64
}

type vec3 [3]float64

func (v vec3) dist2(o vec3) float64 {
	d0, d1, d2 := v[0]-o[0], v[1]-o[1], v[2]-o[2]
	return d0*d0 + d1*d1 + d2*d2
}

func (v vec3) rgb() RGB {
	return RGB{R: uint8(math.Round(v[0])), G: uint8(math.Round(v[1])), B: uint8(math.Round(v[2]))}
}

// Extract clusters the opaque pixels of img into at most count colours.
// The palette is ordered by cluster size, largest first, and its weights
// sum to 1.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("color count too large: %d (maximum: 256)", count)
	}

	swatches, total := sample(img)
	if total == 0 {
		return nil, fmt.Errorf("no opaque pixels found in image")
	}

	if count >= len(swatches) {
		colors := make([]RGB, len(swatches))
		weights := make([]float64, len(swatches))
		for i, s := range swatches {
			colors[i] = s.rgb
			weights[i] = s.count / total
		}
		return sortByWeight(colors, weights), nil
	}

	centroids, sizes := e.cluster(swatches, count)
	colors := make([]RGB, len(centroids))
	weights := make([]float64, len(centroids))
	for i, c := range centroids {
		colors[i] = c.rgb()
		weights[i] = sizes[i] / total
	}
	return sortByWeight(colors, weights), nil
}

// sample reads up to maxSamples pixels on a regular grid and folds them
// into distinct colours, in first-seen order.
func sample(img image.Image) ([]swatch, float64) {
	b := img.Bounds()
	step := 1
	if n := b.Dx() * b.Dy(); n > maxSamples {
		step = max(int(math.Ceil(math.Sqrt(float64(n)/maxSamples))), 1)
	}

	index := make(map[RGB]int)
	var swatches []swatch
	total := 0.0
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			px := img.At(x, y)
			if _, _, _, a := px.RGBA(); a < minAlpha {
				continue
			}
			c := ToRGB(px)
			i, ok := index[c]
			if !ok {
				i = len(swatches)
				index[c] = i
				swatches = append(swatches, swatch{
					rgb: c,
					pos: vec3{float64(c.R), float64(c.G), float64(c.B)},
				})
			}
			swatches[i].count++
			total++
		}
	}
	return swatches, total
}

// cluster runs weighted k-means over the swatches and returns k centroids
// with the sample count each one absorbed.
func (e *KMeansExtractor) cluster(swatches []swatch, k int) ([]vec3, []float64) {
	centroids := e.seed(swatches, k)
	assign := make([]int, len(swatches))

	for range e.maxIterations {
		for i, s := range swatches {
			assign[i] = nearest(s.pos, centroids)
		}

		sums := make([]vec3, k)
		sizes := make([]float64, k)
		for i, s := range swatches {
			c := assign[i]
			for d := range 3 {
				sums[c][d] += s.pos[d] * s.count
			}
			sizes[c] += s.count
		}

		moved := 0.0
		for c := range centroids {
			if sizes[c] == 0 {
				// Reseed an empty cluster on the swatch furthest from its centroid.
				far := farthest(swatches, assign, centroids)
				sums[c], sizes[c] = swatches[far].pos, 1
			}
			next := vec3{sums[c][0] / sizes[c], sums[c][1] / sizes[c], sums[c][2] / sizes[c]}
			moved = max(moved, math.Sqrt(next.dist2(centroids[c])))
			centroids[c] = next
		}
		if moved < e.convergence {
			break
		}
	}

	sizes := make([]float64, k)
	for _, s := range swatches {
		sizes[nearest(s.pos, centroids)] += s.count
	}
	return centroids, sizes
}

// seed picks k starting centroids with k-means++, weighting each swatch
// by its sample count.
func (e *KMeansExtractor) seed(swatches []swatch, k int) []vec3 {
	centroids := make([]vec3, 0, k)
	centroids = append(centroids, swatches[e.pick(swatches, nil)].pos)

	d2 := make([]float64, len(swatches))
	for i, s := range swatches {
		d2[i] = s.pos.dist2(centroids[0])
	}
	for len(centroids) < k {
		next := swatches[e.pick(swatches, d2)].pos
		centroids = append(centroids, next)
		for i, s := range swatches {
			d2[i] = min(d2[i], s.pos.dist2(next))
		}
	}
	return centroids
}

// pick draws a swatch index with probability proportional to count times
// d2 (or count alone when d2 is nil).
func (e *KMeansExtractor) pick(swatches []swatch, d2 []float64) int {
	weight := func(i int) float64 {
		if d2 == nil {
			return swatches[i].count
		}
		return swatches[i].count * d2[i]
	}

	total := 0.0
	for i := range swatches {
		total += weight(i)
	}
	if total == 0 {
		return e.rng.IntN(len(swatches))
	}

	target := e.rng.Float64() * total
	for i := range swatches {
		target -= weight(i)
		if target <= 0 {
			return i
		}
	}
	return len(swatches) - 1
}

func nearest(p vec3, centroids []vec3) int {
	best, bestD := 0, math.MaxFloat64
	for i, c := range centroids {
		if d := p.dist2(c); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func farthest(swatches []swatch, assign []int, centroids []vec3) int {
	best, bestD := 0, -1.0
	for i, s := range swatches {
		if d := s.pos.dist2(centroids[assign[i]]); d > bestD {
			best, bestD = i, d
		}
	}
	return best
}

// sortByWeight orders colours by descending weight, keeping the original
// order between equal weights.
func sortByWeight(colors []RGB, weights []float64) *Palette {
	idx := make([]int, len(colors))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case weights[a] > weights[b]:
			return -1
		case weights[a] < weights[b]:
			return 1
		}
		return 0
	})

	p := &Palette{
		Colors:  make([]RGB, len(colors)),
		Weights: make([]float64, len(colors)),
	}
	for i, j := range idx {
		p.Colors[i] = colors[j]
		p.Weights[i] = weights[j]
	}
	return p
}
