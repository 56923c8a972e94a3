package newsfeed

// Similarity computes a normalized matching-blocks ratio between two strings
// in [0, 1]. 1 means identical; the function is symmetric. It sums the
// lengths of recursively found longest common substrings, which tracks the
// classic sequence-matcher ratio closely enough for near-duplicate titles.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	matched := matchingTotal(ra, rb)
	return float64(2*matched) / float64(total)
}

// matchingTotal finds the longest common substring, then recurses into the
// unmatched prefixes and suffixes. Quadratic in the title lengths, which is
// fine at headline scale.
func matchingTotal(a, b []rune) int {
	aStart, bStart, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingTotal(a[:aStart], b[:bStart]) +
		matchingTotal(a[aStart+size:], b[bStart+size:])
}

func longestCommonBlock(a, b []rune) (aStart, bStart, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// lengths[j] holds the common-suffix length ending at a[i-1], b[j-1].
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return aStart, bStart, size
}
