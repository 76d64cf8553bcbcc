// Package ws2812 packs colors into the GRB words expected by WS2812 LEDs
// and streams them to the LED chain.
package ws2812

// Encode packs three intensities in [0, 1] into a GRB word.
// Each channel is scaled by 255 and truncated, so 0.999 becomes 254.
// Values outside [0, 1] saturate instead of wrapping.
func Encode(green, red, blue float64) uint32 {
	return scale(green)<<16 | scale(red)<<8 | scale(blue)
}

// Decode splits a GRB word back into its 8-bit channels
func Decode(word uint32) (green, red, blue uint8) {
	return uint8(word >> 16), uint8(word >> 8), uint8(word)
}

func scale(v float64) uint32 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	default:
		return uint32(v * 255)
	}
}
