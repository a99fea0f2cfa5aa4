// Package camera provides the 2D camera used to frame a skeleton.
package camera

// Camera2D looks at a world point with a uniform zoom. World Y points up.
type Camera2D struct {
	CenterX, CenterY float32
	Zoom             float32

	MinZoom float32
	MaxZoom float32
	// ZoomStep is the zoom factor applied per wheel notch.
	ZoomStep float32

	width, height float32
}

// New2D creates a camera for a width x height viewport centred on the
// origin.
func New2D(width, height int) *Camera2D {
	c := &Camera2D{
		Zoom:     1,
		MinZoom:  0.05,
		MaxZoom:  20,
		ZoomStep: 1.1,
	}
	c.Resize(width, height)
	return c
}

// Resize updates the viewport size in pixels.
func (c *Camera2D) Resize(width, height int) {
	c.width, c.height = float32(width), float32(height)
}

// Reset recentres on (x, y) at zoom 1.
func (c *Camera2D) Reset(x, y float32) {
	c.CenterX, c.CenterY = x, y
	c.Zoom = 1
}

// Pan moves the view by a screen-space drag. Screen Y points down.
func (c *Camera2D) Pan(dx, dy float32) {
	c.CenterX -= dx / c.Zoom
	c.CenterY += dy / c.Zoom
}

// ZoomBy applies notches of wheel zoom, clamped to [MinZoom, MaxZoom].
func (c *Camera2D) ZoomBy(notches float32) {
	for ; notches >= 1; notches-- {
		c.Zoom *= c.ZoomStep
	}
	for ; notches <= -1; notches++ {
		c.Zoom /= c.ZoomStep
	}
	c.Zoom = min(max(c.Zoom, c.MinZoom), c.MaxZoom)
}

// Bounds returns the visible world rectangle.
func (c *Camera2D) Bounds() (left, right, bottom, top float32) {
	hw := c.width / 2 / c.Zoom
	hh := c.height / 2 / c.Zoom
	return c.CenterX - hw, c.CenterX + hw, c.CenterY - hh, c.CenterY + hh
}

// Projection returns the column-major orthographic projection.
func (c *Camera2D) Projection() [16]float32 {
	l, r, b, t := c.Bounds()
	return Ortho(l, r, b, t, -1, 1)
}

// Ortho returns a column-major orthographic projection matrix.
func Ortho(left, right, bottom, top, near, far float32) [16]float32 {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)

	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}
