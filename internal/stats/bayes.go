package stats

import "math"

// DefaultPriorVariance is the weakly-informative prior used when the caller
// has no opinion about the profit/loss mean.
const DefaultPriorVariance = 1000.0

// Posterior holds a conjugate-normal posterior over the sample mean.
type Posterior struct {
	Mean          float64 `json:"mean"`
	Variance      float64 `json:"variance"`
	CredibleLower float64 `json:"credible_lower"`
	CredibleUpper float64 `json:"credible_upper"`
}

// BayesianUpdate performs the conjugate-normal update of a prior
// (priorMean, priorVariance) against the sample, treating the empirical
// sample variance as the known observation variance. The precision weights
// are 1/priorVariance for the prior and n/sampleVariance for the data; the
// credible interval is the central 95% band (±1.96σ).
//
// A zero sample variance makes the data infinitely precise, so the
// posterior collapses onto the sample mean.
func BayesianUpdate(values []float64, priorMean, priorVariance float64) Posterior {
	n := float64(len(values))
	if n == 0 || priorVariance <= 0 {
		sd := math.Sqrt(priorVariance)
		return Posterior{
			Mean:          priorMean,
			Variance:      priorVariance,
			CredibleLower: priorMean - 1.96*sd,
			CredibleUpper: priorMean + 1.96*sd,
		}
	}

	sampleMean := Mean(values)
	sampleVariance := Variance(values)
	if sampleVariance == 0 {
		return Posterior{Mean: sampleMean, CredibleLower: sampleMean, CredibleUpper: sampleMean}
	}

	priorWeight := 1.0 / priorVariance
	dataWeight := n / sampleVariance

	postMean := (priorWeight*priorMean + dataWeight*sampleMean) / (priorWeight + dataWeight)
	postVariance := 1.0 / (priorWeight + dataWeight)
	margin := 1.96 * math.Sqrt(postVariance)

	return Posterior{
		Mean:          postMean,
		Variance:      postVariance,
		CredibleLower: postMean - margin,
		CredibleUpper: postMean + margin,
	}
}
