package pixfmt

import "testing"

func TestDescribeKnownFormats(t *testing.T) {
	cases := []struct {
		format        Format
		bytesPerPixel int
		hasAlpha      bool
	}{
		{A8, 1, true},
		{XRGB32, 4, false},
		{PRGB32, 4, true},
	}
	for _, c := range cases {
		info := Describe(c.format)
		if info.BytesPerPixel != c.bytesPerPixel {
			t.Errorf("%v: BytesPerPixel = %d, want %d", c.format, info.BytesPerPixel, c.bytesPerPixel)
		}
		if info.HasAlpha != c.hasAlpha {
			t.Errorf("%v: HasAlpha = %v, want %v", c.format, info.HasAlpha, c.hasAlpha)
		}
		if info.FixedShift != 8 || info.FixedScale != 256 {
			t.Errorf("%v: fixed-point scale = shift %d/scale %d, want 8/256", c.format, info.FixedShift, info.FixedScale)
		}
	}
}

func TestDescribeOutOfRangeFallsBackToA8(t *testing.T) {
	info := Describe(Format(200))
	if info != Describe(A8) {
		t.Fatalf("out-of-range format did not fall back to A8 info")
	}
}

func TestFormatString(t *testing.T) {
	if A8.String() != "A8" || XRGB32.String() != "XRGB32" || PRGB32.String() != "PRGB32" {
		t.Fatalf("unexpected Format.String() values")
	}
	if Format(200).String() != "Unknown" {
		t.Fatalf("expected Unknown for out-of-range format")
	}
}

func TestColorPremultiply(t *testing.T) {
	c := Color{R: 200, G: 100, B: 50, A: 128}
	p := c.Premultiply()
	if p.A != 128 {
		t.Fatalf("Premultiply changed alpha: got %d, want 128", p.A)
	}
	if p.R >= c.R || p.G >= c.G || p.B >= c.B {
		t.Fatalf("Premultiply did not scale channels down: got %+v from %+v", p, c)
	}
}

func TestColorPremultiplyOpaqueIsNoop(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, A: 255}
	if p := c.Premultiply(); p != c {
		t.Fatalf("Premultiply on opaque color changed it: got %+v, want %+v", p, c)
	}
}
