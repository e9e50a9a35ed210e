package handlers

import (
	"strings"

	"worddee/internal/models"
	"worddee/internal/practice"
	"worddee/internal/security"
)

// Page carries the fields the shared layout reads
type Page struct {
	Title          string
	Nav            string
	RefreshSeconds int
}

type FeedbackView struct {
	Score             string
	Tone              string
	Level             models.Difficulty
	Suggestion        string
	CorrectedSentence string
}

type PracticeViewData struct {
	Page
	State             string
	Loading           bool
	Submitting        bool
	Failed            bool
	Word              *models.Word
	Sentence          string
	Feedback          *FeedbackView
	Error             string
	SubmitDisabled    bool
	CSRFField         string
	CSRFToken         string
}

type DashboardViewData struct {
	Page
	Cards   []StatsCardView
	Chart   BarChartView
	History HistoryView
}

// practiceJSON is the body returned to clients that ask for JSON
type practiceJSON struct {
	State    string             `json:"state"`
	Word     *models.Word       `json:"word,omitempty"`
	Sentence string             `json:"sentence"`
	Feedback *models.AIFeedback `json:"feedback,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func newPracticeViewData(snap practice.Snapshot, csrfToken string) PracticeViewData {
	data := PracticeViewData{
		Page: Page{
			Title: siteName,
			Nav:   "challenge",
		},
		State:             snap.State.String(),
		Word:              snap.Word,
		Sentence:          snap.Sentence,
		Error:             snap.Error,
		CSRFField:         security.CSRFFieldName,
		CSRFToken:         csrfToken,
	}

	switch {
	case snap.State == practice.StateError:
		data.Failed = true
	case snap.State == practice.StateLoading, snap.Word == nil:
		data.Loading = true
		data.RefreshSeconds = 1
	case snap.State == practice.StateSubmitting:
		data.Submitting = true
		data.RefreshSeconds = 1
	case snap.State == practice.StateFeedback && snap.Feedback != nil:
		data.Feedback = &FeedbackView{
			Score:             models.FormatScore(snap.Feedback.Score),
			Tone:              feedbackTone(snap.Feedback.Score),
			Level:             snap.Feedback.Level,
			Suggestion:        snap.Feedback.Suggestion,
			CorrectedSentence: snap.Feedback.CorrectedSentence,
		}
	}

	data.SubmitDisabled = !snap.CanSubmit || strings.TrimSpace(snap.Sentence) == ""
	return data
}

func newPracticeJSON(snap practice.Snapshot) practiceJSON {
	return practiceJSON{
		State:    snap.State.String(),
		Word:     snap.Word,
		Sentence: snap.Sentence,
		Feedback: snap.Feedback,
		Error:    snap.Error,
	}
}
