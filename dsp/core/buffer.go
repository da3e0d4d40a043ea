package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Reverse reverses buf in place.
func Reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// AllFinite reports whether buf contains neither NaN nor Inf.
func AllFinite(buf []float64) bool {
	for _, v := range buf {
		if v != v || v > maxFinite || v < -maxFinite {
			return false
		}
	}
	return true
}
