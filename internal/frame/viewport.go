package frame

// FixedViewport is a viewport that never changes size.
type FixedViewport struct {
	Width, Height int
	PixelRatio    float32
}

func (v FixedViewport) Size() (int, int) {
	return v.Width, v.Height
}

func (v FixedViewport) DevicePixelRatio() float32 {
	if v.PixelRatio == 0 {
		return 1
	}
	return v.PixelRatio
}
