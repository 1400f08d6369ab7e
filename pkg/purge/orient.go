package purge

import "math"

// reversePurge decides the purge direction for a purge occupying
// [anchorX, anchorX+span] in X. The unmodified routine finishes near the
// upper end of the span; mirroring it finishes near the lower end. Ending on
// the side the first object starts from means the travel move never has to
// cross back over the freshly laid purge line, so the purge is mirrored
// exactly when the object is strictly nearer the lower end. At exact
// equidistance the original direction is kept.
func reversePurge(anchorX, span, firstObjectX float64) bool {
	distLower := math.Abs(firstObjectX - anchorX)
	distUpper := math.Abs(firstObjectX - (anchorX + span))
	return distUpper > distLower
}

// mirrorX reflects a purge-local coordinate inside [anchorX, anchorX+span].
// The coordinate arrives slot-0-relative (the unmodified toolpath), so the
// reflection also carries it to the target anchor.
func mirrorX(anchorX, span, x float64) float64 {
	return anchorX + span - x
}

// travelCrossesPurge reports whether a travel move between fromX and toX
// passes over the interior of the purge span [lo, hi]. Touching an endpoint
// does not count: the travel legitimately starts on the purge's final
// coordinate.
func travelCrossesPurge(fromX, toX, lo, hi float64) bool {
	const eps = 1e-9
	a, b := math.Min(fromX, toX), math.Max(fromX, toX)
	return math.Max(a, lo)+eps < math.Min(b, hi)
}
