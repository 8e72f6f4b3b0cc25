// Package analyzer implements the diary categorization and emotion
// pipeline: one classifier call, a hashtag > keyword > fallback category
// chain, and a minute-resolution timestamp.
package analyzer

import (
	"context"
	"log"
	"time"

	"github.com/seoyeon-oh/maum-diary/backend/internal/analysis/category"
	"github.com/seoyeon-oh/maum-diary/backend/internal/analysis/emotion"
	"github.com/seoyeon-oh/maum-diary/backend/internal/apperr"
	"github.com/seoyeon-oh/maum-diary/backend/internal/model/diary"
)

// TimestampLayout is the record timestamp format, local clock, no seconds.
const TimestampLayout = "2006-01-02-15:04"

// EmotionClassifier predicts an emotion label for a diary text.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (emotion.Label, error)
}

// Summarizer produces a short summary of a diary text. It is only invoked
// on the category fallback path and its output is discarded by design.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Service holds the two inference callables. They are loaded once at
// startup and treated as immutable afterwards.
type Service struct {
	classifier EmotionClassifier
	summarizer Summarizer
	now        func() time.Time
}

// NewService builds the pipeline. The classifier is required; the
// summarizer may be nil, in which case the fallback skips it.
func NewService(classifier EmotionClassifier, summarizer Summarizer) *Service {
	return &Service{
		classifier: classifier,
		summarizer: summarizer,
		now:        time.Now,
	}
}

// Analyze runs the full pipeline on one diary text. Callers reject empty
// text before reaching here.
func (s *Service) Analyze(ctx context.Context, text string) (diary.Analysis, error) {
	label, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return diary.Analysis{}, apperr.Wrap(apperr.KindAnalysis, "감정 분석에 실패했습니다", err)
	}
	display := emotion.Display(label)
	log.Printf("[analyzer] emotion label=%s display=%s", label, display)

	return diary.Analysis{
		Emotion:      display,
		EmotionLabel: string(label),
		Category:     s.resolveCategory(ctx, text),
		Timestamp:    s.now().Format(TimestampLayout),
	}, nil
}

// resolveCategory applies the strict precedence chain: hashtag, then
// keyword table order, then the fallback category.
func (s *Service) resolveCategory(ctx context.Context, text string) string {
	if tag, ok := category.FromHashtag(text); ok {
		log.Printf("[analyzer] hashtag #%s found, category assigned", tag)
		return tag
	}

	if name, keyword, ok := category.FromKeywords(text); ok {
		log.Printf("[analyzer] keyword %q found, category=%s", keyword, name)
		return name
	}

	if s.summarizer != nil {
		// The summary is logged and discarded; the category stays fixed.
		summary, err := s.summarizer.Summarize(ctx, text)
		if err != nil {
			log.Printf("[analyzer] summarizer failed on fallback: %v", err)
		} else {
			log.Printf("[analyzer] no hashtag or keyword, summary discarded: %q", summary)
		}
	}
	return category.Fallback
}
