package models

// LevelDistribution counts practices per difficulty level.
// Keys missing from the payload decode as zero.
type LevelDistribution struct {
	Beginner     int `json:"Beginner"`
	Intermediate int `json:"Intermediate"`
	Advanced     int `json:"Advanced"`
}

// Count returns the count for a level, zero for unknown levels
func (d LevelDistribution) Count(level Difficulty) int {
	switch level {
	case Beginner:
		return d.Beginner
	case Intermediate:
		return d.Intermediate
	case Advanced:
		return d.Advanced
	}
	return 0
}

// SummaryStats is the aggregate summary as sent by the backend.
// Every field is optional; see Resolve.
type SummaryStats struct {
	TotalPractices      *int               `json:"total_practices"`
	AverageScore        *float64           `json:"average_score"`
	TotalWordsPracticed *int               `json:"total_words_practiced"`
	LevelDistribution   *LevelDistribution `json:"level_distribution"`
}

// Summary is a fully populated summary ready for display
type Summary struct {
	TotalPractices      int
	AverageScore        float64
	TotalWordsPracticed int
	LevelDistribution   LevelDistribution
}

// Resolve fills absent fields with zero values. A nil receiver yields the
// all-zero summary.
func (s *SummaryStats) Resolve() Summary {
	var out Summary
	if s == nil {
		return out
	}
	if s.TotalPractices != nil {
		out.TotalPractices = *s.TotalPractices
	}
	if s.AverageScore != nil {
		out.AverageScore = *s.AverageScore
	}
	if s.TotalWordsPracticed != nil {
		out.TotalWordsPracticed = *s.TotalWordsPracticed
	}
	if s.LevelDistribution != nil {
		out.LevelDistribution = *s.LevelDistribution
	}
	return out
}
