package display

import "math"

// arrows in clockwise order, starting with the bucket centred on 0°.
// Wind is reported by the direction it blows from, so 0° (a northerly) points south.
var arrows = [8]string{"↓", "↙", "←", "↖", "↑", "↗", "→", "↘"}

// DirectionGlyph maps a wind direction in degrees to one of eight compass arrows.
// The input is rotated by 22.5° so each 45° bucket is centred on a compass
// point, then wrapped into [0, 360).
func DirectionGlyph(degree float64) string {
	n := math.Mod(degree+22.5, 360)
	if n < 0 {
		n += 360
	}
	return arrows[int(math.Floor(n/45))%len(arrows)]
}
