package diary

import "context"

// Position is the spatial anchor of an entry inside the 3D diary scene.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Analysis is the outcome of running one diary text through the
// categorization and emotion pipeline. It is produced once per request and
// never mutated afterwards.
type Analysis struct {
	Emotion      string `json:"emotion"`
	EmotionLabel string `json:"emotion_label"`
	Category     string `json:"category"`
	Timestamp    string `json:"timestamp"`
}

// Record is one persisted diary submission as stored in and read back from
// the spreadsheet.
type Record struct {
	Timestamp string   `json:"timestamp"`
	Emotion   string   `json:"emotion"`
	Category  string   `json:"category"`
	Text      string   `json:"text"`
	Position  Position `json:"position"`
}

// HeaderRow is the first row of every per-user sheet. Readers skip it when
// present.
var HeaderRow = []string{"Timestamp", "Emotion", "Category", "Diary Text", "x", "y", "z"}

// RecordStore persists analyzed entries, one collection per user identifier.
type RecordStore interface {
	// AppendRecord adds a row [timestamp, emotion, category, text, x, y, z]
	// to the user's collection.
	AppendRecord(ctx context.Context, userID string, analysis Analysis, text string, pos Position) error
	// ListRecords returns all stored records in insertion order. A missing
	// collection (freshly registered user) is an empty, successful result.
	ListRecords(ctx context.Context, userID string) ([]Record, error)
}
