package scores

// Rank is the 1-based position score would take in records, which must be
// ordered by descending score. Equal scores rank after existing entries.
func Rank(records []Record, score int) int {
	for i, r := range records {
		if r.Score < score {
			return i + 1
		}
	}
	return len(records) + 1
}

// IsNewHighScore reports whether score would enter the listed table: the
// table is empty or score beats its last entry.
func IsNewHighScore(records []Record, score int) bool {
	if len(records) == 0 {
		return true
	}
	return score > records[len(records)-1].Score
}
