package scene

// AxesHelper draws the X (red), Y (green) and Z (blue) axes from its origin.
type AxesHelper struct {
	Node
	Size float32
}

// NewAxesHelper returns axes of the given length.
func NewAxesHelper(name string, size float32) *AxesHelper {
	return &AxesHelper{Node: newNode(name, Transform{}), Size: size}
}

// CameraHelper outlines the shadow camera frustum of a light.
type CameraHelper struct {
	Node
	Source ShadowCaster
}

// NewCameraHelper returns a helper tracking src's shadow camera.
func NewCameraHelper(name string, src ShadowCaster) *CameraHelper {
	return &CameraHelper{Node: newNode(name, Transform{}), Source: src}
}
