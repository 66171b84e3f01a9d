package service

import (
	"math"

	"github.com/mindforge-ai/noesis/internal/domain"
)

const (
	DefaultMaxConfidence = 0.99
	DefaultMinConfidence = 0.01
)

func Logit(p float64) float64 {
	p = clampConfidence(p)
	return math.Log(p / (1 - p))
}

func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func clampConfidence(p float64) float64 {
	if p < DefaultMinConfidence {
		return DefaultMinConfidence
	}
	if p > DefaultMaxConfidence {
		return DefaultMaxConfidence
	}
	return p
}

// weightedConfidence combines the mean step confidence with how much the
// call actually concluded: a proof that derives nothing keeps a discounted
// score, several corroborating conclusions pull it toward the step mean.
func weightedConfidence(meanStep float64, conclusions int) float64 {
	support := float64(conclusions) / 3
	if support > 1 {
		support = 1
	}
	return domain.Clamp01(meanStep * (0.7 + 0.3*support))
}

// blend folds value/weight pairs into a weighted mean, clamped.
func blend(pairs ...[2]float64) float64 {
	var sum, weights float64
	for _, p := range pairs {
		sum += p[0] * p[1]
		weights += p[1]
	}
	if weights == 0 {
		return 0
	}
	return domain.Clamp01(sum / weights)
}

// qualityLogOdds scales how far input quality can shift a confidence score
// in log-odds space.
const qualityLogOdds = 0.8

// probabilityConfidence maps a probability and an input-quality factor to a
// confidence score. Probabilities near 0 or 1 are decisive; 0.5 says
// nothing, so confidence bottoms out there. Quality shifts the score in
// log-odds space, the same way accumulating evidence shifts a belief.
func probabilityConfidence(p, quality float64) float64 {
	decisiveness := math.Abs(p-0.5) * 2
	base := clampConfidence(0.3 + 0.5*decisiveness)
	return domain.Clamp01(Sigmoid(Logit(base) + qualityLogOdds*domain.Clamp01(quality)))
}

func meanCertainty(premises []domain.Proposition) float64 {
	if len(premises) == 0 {
		return 0
	}
	var sum float64
	for _, p := range premises {
		sum += p.Certainty
	}
	return sum / float64(len(premises))
}
