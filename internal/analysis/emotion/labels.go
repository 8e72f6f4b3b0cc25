// Package emotion defines the closed label set produced by the emotion
// classifier and its Korean display mapping.
package emotion

import "strings"

// Label is a raw output token of the emotion classifier.
type Label string

const (
	Happy       Label = "happy"
	Sad         Label = "sad"
	Anxious     Label = "anxious"
	Embarrassed Label = "embarrassed"
	Angry       Label = "angry"
	Heartache   Label = "heartache"
	Surprise    Label = "surprise"
	Neutral     Label = "neutral"
)

// Unclassifiable is the display value for labels outside the known set.
// Unknown labels degrade to it instead of failing the pipeline.
const Unclassifiable = "분류불가"

var displayNames = map[Label]string{
	Happy:       "기쁨",
	Sad:         "슬픔",
	Anxious:     "불안",
	Embarrassed: "당황",
	Angry:       "분노",
	Heartache:   "상처",
	Surprise:    "놀람",
	Neutral:     "중립",
}

// Display maps a raw classifier label to its Korean display emotion.
func Display(label Label) string {
	if name, ok := displayNames[label]; ok {
		return name
	}
	return Unclassifiable
}

// Parse validates a raw model output token against the closed label set.
func Parse(raw string) (Label, bool) {
	label := Label(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := displayNames[label]; ok {
		return label, true
	}
	return "", false
}

// Known lists every accepted label, for prompt construction.
func Known() []Label {
	return []Label{Happy, Sad, Anxious, Embarrassed, Angry, Heartache, Surprise, Neutral}
}
