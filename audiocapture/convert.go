package audiocapture

import (
	"encoding/binary"
	"math"

	"github.com/gen2brain/malgo"
)

// supportedFormat reports whether the device sample format can be decoded.
func supportedFormat(format malgo.FormatType) bool {
	switch format {
	case malgo.FormatF32, malgo.FormatS16, malgo.FormatU8:
		return true
	default:
		return false
	}
}

// decodeMono decodes raw interleaved device bytes into float32 samples in
// [-1, 1], keeping only the first channel of each frame. Multi-channel input
// is downmixed by dropping the other channels, not by averaging.
func decodeMono(input []byte, format malgo.FormatType, channels int) []float32 {
	if channels <= 0 {
		return nil
	}

	sampleSize := malgo.SampleSizeInBytes(format)
	if sampleSize == 0 {
		return nil
	}
	frameSize := sampleSize * channels
	if frameSize == 0 || len(input) < sampleSize {
		return nil
	}

	out := make([]float32, 0, len(input)/frameSize)
	for off := 0; off+sampleSize <= len(input); off += frameSize {
		out = append(out, decodeSample(input[off:off+sampleSize], format))
	}
	return out
}

func decodeSample(raw []byte, format malgo.FormatType) float32 {
	switch format {
	case malgo.FormatF32:
		return math.Float32frombits(binary.LittleEndian.Uint32(raw))
	case malgo.FormatS16:
		return float32(int16(binary.LittleEndian.Uint16(raw))) / float32(math.MaxInt16)
	case malgo.FormatU8:
		// Unsigned samples center on half scale; rescale to [-1, 1].
		return float32(raw[0])/float32(math.MaxUint8)*2 - 1
	default:
		return 0
	}
}
