package vision

// reflect101 отражает индекс за краем без повтора крайнего пикселя
// (…, 2, 1, | 0, 1, 2, …), как BORDER_REFLECT_101 в OpenCV.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// clampIndex повторяет крайний пиксель (BORDER_REPLICATE).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clamp16(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 65535 {
		return 65535
	}
	return uint16(v + 0.5)
}
