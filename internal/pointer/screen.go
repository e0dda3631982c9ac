package pointer

// ScreenParams describe how raw client pixels map into host space.
type ScreenParams struct {
	Width   int
	Height  int
	OffsetX float32
	OffsetY float32
	ScaleX  float32
	ScaleY  float32

	configured bool
}

// DefaultScreenParams returns the params a handler starts with: no size, no
// offset and unit scale.
func DefaultScreenParams() ScreenParams {
	return ScreenParams{ScaleX: 1, ScaleY: 1}
}

// NewScreenParams returns configured params.
func NewScreenParams(width, height int, offsetX, offsetY, scaleX, scaleY float32) ScreenParams {
	return ScreenParams{
		Width:      width,
		Height:     height,
		OffsetX:    offsetX,
		OffsetY:    offsetY,
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		configured: true,
	}
}

// Configured reports whether the params came from an explicit set call.
func (p ScreenParams) Configured() bool {
	return p.configured
}

// Map converts a client pixel coordinate into host space, flipping Y so the
// origin ends up bottom-left. With Height still 0 the result is the negated
// scaled offset.
func (p ScreenParams) Map(rawX, rawY float32) (float32, float32) {
	x := float32((rawX - p.OffsetX) * p.ScaleX)
	y := float32(p.Height) - float32((rawY-p.OffsetY)*p.ScaleY)
	return x, y
}

// MapVec is Map returning a Vec2.
func (p ScreenParams) MapVec(rawX, rawY float32) Vec2 {
	x, y := p.Map(rawX, rawY)
	return Vec2{X: x, Y: y}
}
