package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series too short")

type Bin struct {
	Freq  float64
	Power float64
}

// Spectrum returns the one-sided power spectrum of series sampled at
// sampleRate, after removing the mean. Bin 0 is DC.
func Spectrum(series []float64, sampleRate float64) ([]Bin, error) {
	n := len(series)
	if n < 4 {
		return nil, ErrShortSeries
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	bins := make([]Bin, n/2+1)
	for k := range bins {
		a := cmplx.Abs(coeffs[k]) / float64(n)
		bins[k] = Bin{
			Freq:  float64(k) * sampleRate / float64(n),
			Power: a * a,
		}
	}
	return bins, nil
}

// DominantFrequency is the frequency of the strongest non-DC bin.
func DominantFrequency(series []float64, sampleRate float64) (float64, error) {
	bins, err := Spectrum(series, sampleRate)
	if err != nil {
		return 0, err
	}
	best := 1
	for k := 2; k < len(bins); k++ {
		if bins[k].Power > bins[best].Power {
			best = k
		}
	}
	return bins[best].Freq, nil
}
