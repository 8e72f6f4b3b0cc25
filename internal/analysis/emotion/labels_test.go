package emotion

import "testing"

func TestDisplayKnownLabels(t *testing.T) {
	cases := map[Label]string{
		Happy:       "기쁨",
		Sad:         "슬픔",
		Anxious:     "불안",
		Embarrassed: "당황",
		Angry:       "분노",
		Heartache:   "상처",
		Surprise:    "놀람",
		Neutral:     "중립",
	}

	for label, want := range cases {
		if got := Display(label); got != want {
			t.Fatalf("Display(%s): got %q want %q", label, got, want)
		}
	}
}

func TestDisplayUnknownLabel(t *testing.T) {
	if got := Display("confused"); got != Unclassifiable {
		t.Fatalf("unknown label must map to sentinel, got %q", got)
	}
}

func TestParse(t *testing.T) {
	label, ok := Parse("  SAD ")
	if !ok {
		t.Fatal("expected parse to accept a known label")
	}
	if label != Sad {
		t.Fatalf("unexpected label: got %s", label)
	}

	if _, ok := Parse("melancholy"); ok {
		t.Fatal("expected parse to reject an unknown label")
	}
}
