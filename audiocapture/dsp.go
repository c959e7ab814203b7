package audiocapture

import "math"

const (
	// silenceWindow is the RMS analysis window, 30ms at 16kHz.
	silenceWindow = 480
	// tailPadding keeps 500ms of audio after the last voiced window so
	// trailing words aren't clipped.
	tailPadding = 8000
)

// ResampleLinear converts input from inRate to outRate by linear
// interpolation. Matching rates and empty input pass through untouched.
func ResampleLinear(input []float32, inRate, outRate uint32) []float32 {
	if len(input) == 0 || inRate == outRate {
		return input
	}

	ratio := float64(inRate) / float64(outRate)
	outLen := int(float64(len(input)) / ratio)
	out := make([]float32, 0, outLen)

	for i := 0; i < outLen; i++ {
		srcPos := float64(i) * ratio
		idx := int(srcPos)
		frac := float32(srcPos - float64(idx))

		var a, b float32
		if idx < len(input) {
			a = input[idx]
		}
		b = a
		if idx+1 < len(input) {
			b = input[idx+1]
		}
		out = append(out, a+(b-a)*frac)
	}

	return out
}

// TrimSilence cuts leading and trailing windows whose RMS is below
// threshold. A fully silent buffer trims to nothing.
func TrimSilence(samples []float32, threshold float32) []float32 {
	first := -1
	last := -1
	for i := 0; i < len(samples); i += silenceWindow {
		end := i + silenceWindow
		if end > len(samples) {
			end = len(samples)
		}
		if rms(samples[i:end]) >= threshold {
			if first < 0 {
				first = i / silenceWindow
			}
			last = i / silenceWindow
		}
	}
	if first < 0 {
		return nil
	}

	start := first * silenceWindow
	end := (last+1)*silenceWindow + tailPadding
	if end > len(samples) {
		end = len(samples)
	}
	if start >= end {
		return nil
	}

	out := make([]float32, end-start)
	copy(out, samples[start:end])
	return out
}

// rms is the root mean square level of samples; empty input is 0.
func rms(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range samples {
		sumSq += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sumSq / float64(len(samples))))
}
