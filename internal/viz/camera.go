package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minZoom = 0.1
	maxZoom = 20
)

// Camera projects world positions orthographically onto the canvas. With
// no rotation it looks down the z axis onto the xy plane.
type Camera struct {
	Target     mgl64.Vec3
	RotX, RotY float64
	Zoom       float64
	// Scale is sub-pixels per world unit at zoom 1.
	Scale float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1.0, Scale: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

func (c *Camera) Reset() {
	c.RotX, c.RotY, c.Zoom = 0, 0, 1
}

// Fit sets Scale so that a sphere of the given radius around Target fills
// most of a sw x sh sub-pixel canvas.
func (c *Camera) Fit(radius float64, sw, sh int) {
	if radius <= 0 {
		return
	}
	c.Scale = 0.45 * float64(min(sw, sh)) / radius
}

func (c *Camera) rotation() mgl64.Mat3 {
	return mgl64.Rotate3DY(c.RotY).Mul3(mgl64.Rotate3DX(c.RotX))
}

// Project maps p to sub-pixel coordinates. It returns x, y, depth and
// whether the point lands on the canvas.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotation().Mul3x1(p.Sub(c.Target))
	s := c.Scale * c.Zoom
	fx := rot.X()*s + float64(sw)/2
	fy := -rot.Y()*s + float64(sh)/2
	if !(math.Abs(fx) < math.MaxInt32 && math.Abs(fy) < math.MaxInt32) {
		return 0, 0, 0, false
	}
	sx, sy := int(math.Floor(fx)), int(math.Floor(fy))
	return sx, sy, rot.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// PixelRadius converts a world radius to sub-pixels.
func (c *Camera) PixelRadius(r float64) int {
	return int(r * c.Scale * c.Zoom)
}
