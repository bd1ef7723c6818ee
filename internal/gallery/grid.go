package gallery

import "github.com/Faultbox/midgard-gallery/pkg/math"

// surfaceDepth lifts grid geometry just off the screen quad.
const surfaceDepth = 0.001

// TileParams fixes the grid: Amount tiles per side, Size apart.
type TileParams struct {
	Amount int
	Size   float32
}

// Extent returns the side length of the whole grid.
func (p TileParams) Extent() float32 {
	return float32(p.Amount) * p.Size
}

// Placement is the transform of one tile instance.
type Placement struct {
	Position math.Vec3
	Scale    math.Vec3
}

// Matrix returns the instance model matrix.
func (p Placement) Matrix() math.Mat4 {
	return math.Compose(p.Position, math.Identity(), p.Scale)
}

// gridOffset centres n cells of the given size on the origin.
func gridOffset(n int, size float32) float32 {
	return -float32(n-1) * 0.5 * size
}

// TileLayout returns Amount² placements, x outer and y inner. The order is
// the instance index order.
func TileLayout(p TileParams) []Placement {
	offset := gridOffset(p.Amount, p.Size)
	out := make([]Placement, 0, p.Amount*p.Amount)

	for x := 0; x < p.Amount; x++ {
		for y := 0; y < p.Amount; y++ {
			out = append(out, Placement{
				Position: math.Vec3{
					X: float32(x)*p.Size + offset,
					Y: float32(y)*p.Size + offset,
					Z: surfaceDepth,
				},
				Scale: math.Vec3{X: p.Size, Y: p.Size, Z: 1},
			})
		}
	}
	return out
}

// DotLayout returns the (Amount+1)² tile corners, x outer and y inner.
func DotLayout(p TileParams) []math.Vec3 {
	n := p.Amount + 1
	offset := gridOffset(n, p.Size)
	out := make([]math.Vec3, 0, n*n)

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			out = append(out, math.Vec3{
				X: float32(x)*p.Size + offset,
				Y: float32(y)*p.Size + offset,
				Z: surfaceDepth,
			})
		}
	}
	return out
}

// GridLines returns line segment endpoints in pairs: Amount+1 vertical
// lines followed by Amount+1 horizontal lines, each spanning the full grid.
func GridLines(p TileParams) []math.Vec3 {
	n := p.Amount + 1
	offset := gridOffset(n, p.Size)
	half := p.Extent() / 2
	out := make([]math.Vec3, 0, 4*n)

	for i := 0; i < n; i++ {
		x := float32(i)*p.Size + offset
		out = append(out, math.Vec3{X: x, Y: -half}, math.Vec3{X: x, Y: half})
	}
	for i := 0; i < n; i++ {
		y := float32(i)*p.Size + offset
		out = append(out, math.Vec3{X: -half, Y: y}, math.Vec3{X: half, Y: y})
	}
	return out
}
