package audiocapture

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gen2brain/malgo"
)

func TestDecodeMonoF32(t *testing.T) {
	// Two stereo frames; only the first channel survives.
	raw := make([]byte, 0, 16)
	for _, v := range []float32{0.25, 0.75, -0.5, 1.0} {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(v))
	}

	out := decodeMono(raw, malgo.FormatF32, 2)
	want := []float32{0.25, -0.5}
	if len(out) != len(want) {
		t.Fatalf("len = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestDecodeMonoS16(t *testing.T) {
	raw := make([]byte, 0, 6)
	for _, v := range []int16{math.MaxInt16, 0, math.MinInt16 + 1} {
		raw = binary.LittleEndian.AppendUint16(raw, uint16(v))
	}

	out := decodeMono(raw, malgo.FormatS16, 1)
	want := []float32{1, 0, -1}
	if len(out) != len(want) {
		t.Fatalf("len = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 1e-4 {
			t.Fatalf("sample %d = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestDecodeMonoU8(t *testing.T) {
	out := decodeMono([]byte{0, 255}, malgo.FormatU8, 1)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0] != -1 || out[1] != 1 {
		t.Fatalf("out = %v, want [-1 1]", out)
	}
}

func TestDecodeMonoDegenerate(t *testing.T) {
	if out := decodeMono(nil, malgo.FormatS16, 1); out != nil {
		t.Fatalf("empty input: got %v", out)
	}
	if out := decodeMono([]byte{1, 2}, malgo.FormatS16, 0); out != nil {
		t.Fatalf("zero channels: got %v", out)
	}
}

func TestSupportedFormat(t *testing.T) {
	for _, f := range []malgo.FormatType{malgo.FormatF32, malgo.FormatS16, malgo.FormatU8} {
		if !supportedFormat(f) {
			t.Fatalf("format %v should be supported", f)
		}
	}
	if supportedFormat(malgo.FormatS24) {
		t.Fatal("s24 should be unsupported")
	}
}
