package common

// ParabolicOffset returns the vertex offset of the parabola through
// (-1, y1), (0, y2), (1, y3), where y2 is the sampled peak:
//
//	delta = 0.5*(y1-y3) / (y1-2*y2+y3)
//
// A flat neighbourhood (zero curvature) yields 0.
func ParabolicOffset(y1, y2, y3 float64) float64 {
	denominator := y1 - 2*y2 + y3
	if denominator == 0 {
		return 0.0
	}

	delta := 0.5 * (y1 - y3) / denominator
	if !IsFinite(delta) {
		return 0.0
	}
	return delta
}

// InterpolatePeak refines an integer peak index of data with ParabolicOffset.
// Peaks on either edge cannot be refined and are returned unchanged.
func InterpolatePeak(data []float64, peak int) float64 {
	if peak < 1 || peak >= len(data)-1 {
		return float64(peak)
	}
	return float64(peak) + ParabolicOffset(data[peak-1], data[peak], data[peak+1])
}

// ParabolicVertex returns the vertex offset and height of the parabola
// through (-1, y1), (0, y2), (1, y3).
func ParabolicVertex(y1, y2, y3 float64) (offset, height float64) {
	offset = ParabolicOffset(y1, y2, y3)
	return offset, y2 - 0.25*(y1-y3)*offset
}
