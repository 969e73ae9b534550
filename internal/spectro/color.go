package spectro

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpRGB(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// HeatColor is the default color function: deep blue through cyan and green
// to yellow and red, brighter with intensity.
func HeatColor(t float64) RGB {
	t = clamp01(t)
	switch {
	case t < 0.25:
		return lerpRGB(RGB{R: 8, G: 10, B: 36}, RGB{R: 0, G: 110, B: 220}, t/0.25)
	case t < 0.5:
		return lerpRGB(RGB{R: 0, G: 110, B: 220}, RGB{R: 20, G: 220, B: 150}, (t-0.25)/0.25)
	case t < 0.75:
		return lerpRGB(RGB{R: 20, G: 220, B: 150}, RGB{R: 250, G: 220, B: 80}, (t-0.5)/0.25)
	default:
		return lerpRGB(RGB{R: 250, G: 220, B: 80}, RGB{R: 255, G: 70, B: 50}, (t-0.75)/0.25)
	}
}
