package client

import "fmt"

// netherDimension is the only dimension pair with a coordinate scale
// difference: one nether block spans eight overworld blocks.
const netherDimension = -1

// DimensionalValue maps a coordinate native to primaryDim into the frame of
// viewDim. Same dimension passes through. A nether-native value viewed from
// elsewhere is multiplied by 8; a value viewed from the nether is divided by
// 8. Every other pairing shares the overworld scale and passes through.
func DimensionalValue(v float64, primaryDim, viewDim int) float64 {
	switch {
	case primaryDim == viewDim:
		return v
	case primaryDim == netherDimension:
		return v * 8
	case viewDim == netherDimension:
		return v / 8
	default:
		return v
	}
}

// FormatWorldClock renders the world time as the in-game clock does:
// 20 ticks per second, shown as minutes and seconds of the day cycle.
func FormatWorldClock(ticks int64) string {
	allSecs := ticks / 20
	return fmt.Sprintf("%02d:%02d", allSecs/60, allSecs%60)
}
