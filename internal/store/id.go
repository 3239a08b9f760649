package store

import "strconv"

// ParseID accepts positive decimal ids only. Anything else can never name a
// stored record.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
