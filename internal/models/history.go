package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// naive ISO-8601 layouts emitted by backends that drop the zone
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a practice time that tolerates zone-less ISO strings.
// Zone-less values are read as UTC. Values that cannot be read as a time
// decode to the zero time so one bad entry never fails a whole list.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var raw string
	if bytes.Equal(data, []byte("null")) || json.Unmarshal(data, &raw) != nil || raw == "" {
		return nil
	}

	t.Time = parseTimestamp(raw)
	return nil
}

func parseTimestamp(raw string) time.Time {
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// HistoryItem represents a single past practice attempt
type HistoryItem struct {
	ID           int64     `json:"id"`
	Word         string    `json:"word"`
	UserSentence string    `json:"user_sentence"`
	Score        float64   `json:"score"`
	Feedback     string    `json:"feedback"`
	PracticedAt  Timestamp `json:"practiced_at"`
}
