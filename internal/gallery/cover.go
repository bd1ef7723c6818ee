package gallery

import "github.com/Faultbox/midgard-gallery/pkg/math"

// CoverScale returns the uv scale that makes a texture with the given
// width/height ratio cover a target of the given aspect, like CSS
// background-size: cover. One component is always 1; the other shrinks
// the sampled range on the overflowing axis. Shaders apply it as
// (uv - 0.5) * scale + 0.5.
func CoverScale(ratio, aspect float32) math.Vec2 {
	var s math.Vec2
	CoverScaleInto(&s, ratio, aspect)
	return s
}

// CoverScaleInto writes the cover scale into dst without allocating.
func CoverScaleInto(dst *math.Vec2, ratio, aspect float32) {
	if aspect < ratio {
		dst.Set(aspect/ratio, 1)
		return
	}
	dst.Set(1, ratio/aspect)
}
