package queries

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	MaxListOffset    = 1_000_000
)

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > MaxListOffset {
		return MaxListOffset
	}
	return offset
}

// ratio returns 0 for an empty denominator
func ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
