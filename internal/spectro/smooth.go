package spectro

import "github.com/charmbracelet/harmonica"

// Smoother eases row-to-row jumps in the normalized spectrum with one damped
// spring per bin. Purely cosmetic: hosts that want a raw waterfall leave the
// pipeline's smoother nil.
type Smoother struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

// NewSmoother creates a smoother stepped fps times per second with the given
// spring frequency and damping.
func NewSmoother(fps int, frequency, damping float64) *Smoother {
	return &Smoother{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Apply advances each bin's spring toward its value in norm and writes the
// smoothed position back, clamped to [0,1].
func (s *Smoother) Apply(norm []float64) {
	if len(s.pos) != len(norm) {
		s.pos = make([]float64, len(norm))
		s.vel = make([]float64, len(norm))
	}
	for i, target := range norm {
		p, v := s.spring.Update(s.pos[i], s.vel[i], target)
		s.pos[i] = p
		s.vel[i] = v
		norm[i] = clamp01(p)
	}
}
