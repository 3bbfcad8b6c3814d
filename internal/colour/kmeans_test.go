package colour

import (
	"fmt"
	"image"
	"image/color"
	"testing"
)

// blockImage paints the given colours as horizontal bands, each band's
// height proportional to its share.
func blockImage(colours []RGB, heights []int) *image.RGBA {
	total := 0
	for _, h := range heights {
		total += h
	}
	img := image.NewRGBA(image.Rect(0, 0, 10, total))
	y := 0
	for i, c := range colours {
		for row := 0; row < heights[i]; row++ {
			for x := 0; x < 10; x++ {
				img.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
			y++
		}
	}
	return img
}

func TestKMeansExtractReturnsUniqueColoursByWeight(t *testing.T) {
	img := blockImage([]RGB{{R: 255}, {B: 255}}, []int{2, 6})

	p, err := NewKMeansExtractor().WithSeed(1).Extract(img, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Extract() returned %d colours, want 2", p.Len())
	}
	if p.Colors[0] != (RGB{B: 255}) {
		t.Errorf("most dominant colour = %v, want blue", p.Colors[0])
	}
	if p.Weights[0] != 0.75 || p.Weights[1] != 0.25 {
		t.Errorf("weights = %v, want [0.75 0.25]", p.Weights)
	}
}

func TestKMeansExtractClusters(t *testing.T) {
	colours := []RGB{{R: 250, G: 5, B: 5}, {R: 255}, {G: 250, B: 5}, {G: 255}, {B: 250}, {B: 255}}
	img := blockImage(colours, []int{10, 10, 10, 10, 10, 10})

	p, err := NewKMeansExtractor().WithSeed(7).Extract(img, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Extract() returned %d colours, want 3", p.Len())
	}

	sum := 0.0
	for _, w := range p.Weights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("weights sum to %v, want 1", sum)
	}
	for i := 1; i < len(p.Weights); i++ {
		if p.Weights[i] > p.Weights[i-1] {
			t.Errorf("weights not descending: %v", p.Weights)
		}
	}
}

func TestKMeansExtractValidation(t *testing.T) {
	e := NewKMeansExtractor()
	img := blockImage([]RGB{White}, []int{1})

	tests := []struct {
		name  string
		img   image.Image
		count int
	}{
		{name: "nil image", img: nil, count: 4},
		{name: "zero count", img: img, count: 0},
		{name: "too many", img: img, count: 257},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Extract(tt.img, tt.count); err == nil {
				t.Error("Extract() expected an error")
			}
		})
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  ExtractorConfig
		wantErr bool
	}{
		{name: "default", config: DefaultExtractorConfig()},
		{name: "bad algorithm", config: ExtractorConfig{Algorithm: "mediancut", ColorCount: 8}, wantErr: true},
		{name: "zero colours", config: ExtractorConfig{Algorithm: AlgorithmKMeans}, wantErr: true},
		{name: "too many colours", config: ExtractorConfig{Algorithm: AlgorithmKMeans, ColorCount: 300}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := NewExtractor(ExtractorConfig{Algorithm: "dominant"}); err == nil {
		t.Error("NewExtractor() should reject unknown algorithms")
	}
}

func TestKMeansSkipsTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := NewKMeansExtractor().Extract(img, 2); err == nil {
		t.Error("Extract() on a fully transparent image should fail")
	}

	img.Set(0, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	p, err := NewKMeansExtractor().Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if p.Len() != 1 || p.Colors[0] != (RGB{R: 200, G: 10, B: 10}) || p.Weights[0] != 1 {
		t.Errorf("Extract() = %v %v, want the single opaque pixel", p.Colors, p.Weights)
	}
}

func TestSampleLimitsLargeImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := range 300 {
		for x := range 400 {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	swatches, total := sample(img)
	if total > maxSamples {
		t.Errorf("sampled %v pixels, want at most %d", total, maxSamples)
	}
	if len(swatches) == 0 || float64(len(swatches)) > total {
		t.Errorf("got %d swatches from %v samples", len(swatches), total)
	}
}

func TestKMeansSeparatesDistantGroups(t *testing.T) {
	// Two tight groups far apart must land in different clusters.
	colours := []RGB{{R: 250, G: 250, B: 250}, {R: 245, G: 248, B: 250}, {R: 5, G: 5, B: 10}, {R: 10, G: 8, B: 5}}
	img := blockImage(colours, []int{5, 5, 5, 5})

	p, err := NewKMeansExtractor().WithSeed(3).Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Extract() returned %d colours, want 2", p.Len())
	}
	light, dark := p.Colors[0], p.Colors[1]
	if !IsLight(light) {
		light, dark = dark, light
	}
	if !IsLight(light) || IsLight(dark) {
		t.Errorf("clusters = %v, want one light and one dark", p.Colors)
	}
	if p.Weights[0] != 0.5 || p.Weights[1] != 0.5 {
		t.Errorf("weights = %v, want [0.5 0.5]", p.Weights)
	}
}

func TestNewExtractorSeed(t *testing.T) {
	colours := []RGB{{R: 250}, {R: 200, G: 40}, {G: 200}, {G: 150, B: 60}, {B: 250}, {R: 90, B: 200}}
	img := blockImage(colours, []int{3, 4, 5, 6, 7, 8})
	cfg := ExtractorConfig{Algorithm: AlgorithmKMeans, ColorCount: 3, Seed: 11}

	run := func() *Palette {
		e, err := NewExtractor(cfg)
		if err != nil {
			t.Fatalf("NewExtractor() error = %v", err)
		}
		p, err := e.Extract(img, cfg.ColorCount)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		return p
	}

	a, b := run(), run()
	if fmt.Sprint(a.Colors, a.Weights) != fmt.Sprint(b.Colors, b.Weights) {
		t.Errorf("same seed gave %v and %v", a.Colors, b.Colors)
	}
}
