package auth

// PlayerColors is the palette of player colors. New users are assigned
// a color round-robin by registration order.
var PlayerColors = []int{
	0x00d4ff, // cyan
	0xff6b35, // orange
	0x7bed9f, // green
	0xff4757, // red
	0xffd43b, // yellow
	0xcc5de8, // purple
	0x20c997, // teal
	0xff8787, // pink
	0x748ffc, // blue
	0xffc078, // peach
	0x63e6be, // mint
	0xe599f7, // lavender
}

// IsValidColor reports whether a color is part of the palette.
func IsValidColor(color int) bool {
	for _, c := range PlayerColors {
		if c == color {
			return true
		}
	}
	return false
}
