package utils

// Align8 rounds n up to the next multiple of 8
func Align8(n int) int {
	if n%8 == 0 {
		return n
	}
	return n + (8 - n%8)
}
