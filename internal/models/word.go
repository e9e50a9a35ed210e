package models

// Difficulty classifies a word or a scored sentence
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Levels returns the difficulty levels in ascending order
func Levels() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// Valid reports whether d is one of the known levels
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Word represents the word of the day served by the backend
type Word struct {
	ID              int64      `json:"id"`
	Word            string     `json:"word"`
	Definition      string     `json:"definition"`
	DifficultyLevel Difficulty `json:"difficulty_level"`
}

// AIFeedback represents the evaluation of a submitted sentence
type AIFeedback struct {
	Score             float64    `json:"score"`
	Level             Difficulty `json:"level"`
	Suggestion        string     `json:"suggestion"`
	CorrectedSentence string     `json:"corrected_sentence"`
}

// SentenceSubmission is the request body for sentence validation
type SentenceSubmission struct {
	WordID   int64  `json:"word_id"`
	Sentence string `json:"sentence"`
}
