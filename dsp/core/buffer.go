package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[F Float](buf []F, n int) []F {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]F, n)
}

// Fill sets all values in buf to v.
func Fill[F Float](buf []F, v F) {
	for i := range buf {
		buf[i] = v
	}
}

// MinInto stores the element-wise minimum of dst and src in dst.
// Only the overlapping prefix is touched.
func MinInto[F Float](dst, src []F) {
	n := min(len(dst), len(src))
	for i := range n {
		if src[i] < dst[i] {
			dst[i] = src[i]
		}
	}
}
