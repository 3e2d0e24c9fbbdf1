package led

// BrightnessLUT scales one 8-bit channel by a global brightness level.
type BrightnessLUT [256]uint8

// NewBrightnessLUT builds the table for level using scale8 semantics:
// v*(level+1)/256, so 255 leaves values untouched and 0 blanks them.
func NewBrightnessLUT(level uint8) BrightnessLUT {
	var l BrightnessLUT
	for v := 0; v < 256; v++ {
		l[v] = uint8((v * (int(level) + 1)) >> 8)
	}
	return l
}
