package service

import (
	"math"
	"testing"

	"github.com/mindforge-ai/noesis/internal/domain"
)

func TestLogitSigmoidRoundTrip(t *testing.T) {
	for _, p := range []float64{0.05, 0.25, 0.5, 0.75, 0.95} {
		got := Sigmoid(Logit(p))
		if math.Abs(got-p) > 1e-9 {
			t.Errorf("Sigmoid(Logit(%v)) = %v", p, got)
		}
	}
}

func TestLogitClampsExtremes(t *testing.T) {
	if got, want := Logit(0), Logit(DefaultMinConfidence); got != want {
		t.Errorf("Logit(0) = %v, want clamp to %v", got, want)
	}
	if got, want := Logit(1), Logit(DefaultMaxConfidence); got != want {
		t.Errorf("Logit(1) = %v, want clamp to %v", got, want)
	}
}

func TestClampConfidence(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, DefaultMinConfidence},
		{0, DefaultMinConfidence},
		{0.42, 0.42},
		{1, DefaultMaxConfidence},
		{2, DefaultMaxConfidence},
	}
	for _, tc := range cases {
		if got := clampConfidence(tc.in); got != tc.want {
			t.Errorf("clampConfidence(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWeightedConfidence(t *testing.T) {
	// No conclusions keeps only the discounted step mean.
	if got := weightedConfidence(0.8, 0); math.Abs(got-0.56) > 1e-9 {
		t.Errorf("weightedConfidence(0.8, 0) = %v, want 0.56", got)
	}
	// Support saturates at three conclusions.
	full := weightedConfidence(0.8, 3)
	if math.Abs(full-0.8) > 1e-9 {
		t.Errorf("weightedConfidence(0.8, 3) = %v, want 0.8", full)
	}
	if got := weightedConfidence(0.8, 10); got != full {
		t.Errorf("support should saturate, got %v and %v", got, full)
	}
	// More conclusions never lower the score.
	prev := 0.0
	for n := 0; n <= 4; n++ {
		got := weightedConfidence(0.6, n)
		if got < prev {
			t.Fatalf("weightedConfidence(0.6, %d) = %v dropped below %v", n, got, prev)
		}
		prev = got
	}
}

func TestBlend(t *testing.T) {
	if got := blend(); got != 0 {
		t.Errorf("blend() = %v, want 0", got)
	}
	got := blend([2]float64{0.9, 1}, [2]float64{0.3, 3})
	if math.Abs(got-0.45) > 1e-9 {
		t.Errorf("blend = %v, want 0.45", got)
	}
	if got := blend([2]float64{5, 1}); got != 1 {
		t.Errorf("blend should clamp to 1, got %v", got)
	}
}

func TestProbabilityConfidence(t *testing.T) {
	// p = 0.5 carries no information.
	low := probabilityConfidence(0.5, 0)
	if math.Abs(low-0.3) > 1e-9 {
		t.Errorf("probabilityConfidence(0.5, 0) = %v, want 0.3", low)
	}
	// Decisive probabilities score higher, symmetrically.
	hi := probabilityConfidence(0.95, 0.5)
	lo := probabilityConfidence(0.05, 0.5)
	if math.Abs(hi-lo) > 1e-9 {
		t.Errorf("symmetric probabilities should score equally: %v vs %v", hi, lo)
	}
	if hi <= low {
		t.Errorf("decisive probability should beat 0.5: %v <= %v", hi, low)
	}
	// Quality shifts the score up in log-odds space without reaching 1.
	if a, b := probabilityConfidence(0.9, 0), probabilityConfidence(0.9, 1); b <= a || b >= 1 {
		t.Errorf("quality shift out of order: %v, %v", a, b)
	}
}

func TestMeanCertainty(t *testing.T) {
	if got := meanCertainty(nil); got != 0 {
		t.Errorf("meanCertainty(nil) = %v, want 0", got)
	}
	props := []domain.Proposition{{Certainty: 0.6}, {Certainty: 0.8}}
	if got := meanCertainty(props); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("meanCertainty = %v, want 0.7", got)
	}
}
