package analyzer

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/seoyeon-oh/maum-diary/backend/internal/analysis/emotion"
)

type classifierFunc func(ctx context.Context, text string) (emotion.Label, error)

func (f classifierFunc) Classify(ctx context.Context, text string) (emotion.Label, error) {
	return f(ctx, text)
}

type summarizerFunc func(ctx context.Context, text string) (string, error)

func (f summarizerFunc) Summarize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func fixedClassifier(label emotion.Label) classifierFunc {
	return func(context.Context, string) (emotion.Label, error) {
		return label, nil
	}
}

func TestAnalyzeHashtagWinsOverKeywords(t *testing.T) {
	svc := NewService(fixedClassifier(emotion.Sad), nil)

	// 회사 and 야근 are 업무 keywords, but the hashtag takes precedence.
	result, err := svc.Analyze(context.Background(), "오늘 회사에서 야근했다 #피곤함")
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}

	if result.Emotion != "슬픔" {
		t.Fatalf("unexpected emotion: got %q want %q", result.Emotion, "슬픔")
	}
	if result.EmotionLabel != "sad" {
		t.Fatalf("unexpected label: got %q", result.EmotionLabel)
	}
	if result.Category != "피곤함" {
		t.Fatalf("unexpected category: got %q want %q", result.Category, "피곤함")
	}
}

func TestAnalyzeKeywordTableOrder(t *testing.T) {
	svc := NewService(fixedClassifier(emotion.Happy), nil)

	result, err := svc.Analyze(context.Background(), "친구랑 카페 갔다")
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}

	if result.Emotion != "기쁨" {
		t.Fatalf("unexpected emotion: got %q", result.Emotion)
	}
	// Both 관계 (친구) and 음식 (카페) match; table order decides.
	if result.Category != "관계" {
		t.Fatalf("unexpected category: got %q want %q", result.Category, "관계")
	}
}

func TestAnalyzeFallbackInvokesAndDiscardsSummary(t *testing.T) {
	summarizerCalled := false
	summarizer := summarizerFunc(func(context.Context, string) (string, error) {
		summarizerCalled = true
		return "새 소리를 들은 하루", nil
	})
	svc := NewService(fixedClassifier(emotion.Neutral), summarizer)

	result, err := svc.Analyze(context.Background(), "새가 울었다")
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}

	if !summarizerCalled {
		t.Fatal("expected the summarizer to be invoked on the fallback path")
	}
	if result.Category != "기타" {
		t.Fatalf("summary must be discarded: got category %q want %q", result.Category, "기타")
	}
}

func TestAnalyzeFallbackWithoutSummarizer(t *testing.T) {
	svc := NewService(fixedClassifier(emotion.Neutral), nil)

	result, err := svc.Analyze(context.Background(), "새가 울었다")
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}
	if result.Category != "기타" {
		t.Fatalf("unexpected category: got %q want %q", result.Category, "기타")
	}
}

func TestAnalyzeSummarizerErrorDoesNotFail(t *testing.T) {
	summarizer := summarizerFunc(func(context.Context, string) (string, error) {
		return "", errors.New("model overloaded")
	})
	svc := NewService(fixedClassifier(emotion.Neutral), summarizer)

	result, err := svc.Analyze(context.Background(), "새가 울었다")
	if err != nil {
		t.Fatalf("summarizer failure must not fail the pipeline: %v", err)
	}
	if result.Category != "기타" {
		t.Fatalf("unexpected category: got %q", result.Category)
	}
}

func TestAnalyzeUnknownLabelDegrades(t *testing.T) {
	svc := NewService(fixedClassifier("confused"), nil)

	result, err := svc.Analyze(context.Background(), "오늘 하루")
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}
	if result.Emotion != emotion.Unclassifiable {
		t.Fatalf("unknown label must degrade to sentinel, got %q", result.Emotion)
	}
	if result.EmotionLabel != "confused" {
		t.Fatalf("raw label must be preserved, got %q", result.EmotionLabel)
	}
}

func TestAnalyzeClassifierError(t *testing.T) {
	classifier := classifierFunc(func(context.Context, string) (emotion.Label, error) {
		return "", errors.New("inference backend down")
	})
	svc := NewService(classifier, nil)

	if _, err := svc.Analyze(context.Background(), "오늘 하루"); err == nil {
		t.Fatal("expected an error when the classifier fails")
	}
}

func TestAnalyzeTimestampFormat(t *testing.T) {
	svc := NewService(fixedClassifier(emotion.Happy), nil)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 9, 5, 42, 0, time.Local)
	}

	result, err := svc.Analyze(context.Background(), "오늘 점심")
	if err != nil {
		t.Fatalf("Analyze err: %v", err)
	}

	if result.Timestamp != "2026-08-31-09:05" {
		t.Fatalf("unexpected timestamp: got %q", result.Timestamp)
	}

	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{2}:\d{2}$`)
	if !pattern.MatchString(result.Timestamp) {
		t.Fatalf("timestamp %q does not match minute-resolution format", result.Timestamp)
	}
}
