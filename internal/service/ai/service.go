// Package ai wires the shared Ark chat model into the two inference
// callables the diary pipeline needs: an emotion classifier and a
// summarizer. Both are compiled once at startup and reused by every
// request.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/seoyeon-oh/maum-diary/backend/internal/analysis/emotion"
	"github.com/seoyeon-oh/maum-diary/backend/internal/config"
)

// Service exposes classification and summarization over one chat model.
type Service struct {
	chatModel  model.ChatModel
	classifier compose.Runnable[map[string]any, *schema.Message]
	summarizer compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the model from configuration and compiles both chains.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	classifier, err := compileChain(ctx, chatModel, classifierSystemPrompt, classifierUserPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile classifier chain: %w", err)
	}

	summarizer, err := compileChain(ctx, chatModel, summarizerSystemPrompt, summarizerUserPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile summarizer chain: %w", err)
	}

	return &Service{
		chatModel:  chatModel,
		classifier: classifier,
		summarizer: summarizer,
	}, nil
}

func compileChain(ctx context.Context, chatModel model.ChatModel, system, user string) (compose.Runnable[map[string]any, *schema.Message], error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	return chain.Compile(ctx)
}

// Classify runs the emotion classifier on the raw diary text and returns
// its predicted label. Output outside the closed label set is an error.
func (s *Service) Classify(ctx context.Context, text string) (emotion.Label, error) {
	msg, err := s.classifier.Invoke(ctx, map[string]any{"diary": text})
	if err != nil {
		return "", fmt.Errorf("classifier invoke failed: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("classifier returned empty output")
	}

	payload, err := parseClassifierOutput(msg.Content)
	if err != nil {
		return "", fmt.Errorf("classifier output parse failed: %w", err)
	}

	label, ok := emotion.Parse(payload.Label)
	if !ok {
		return "", fmt.Errorf("classifier returned unknown label %q", payload.Label)
	}
	return label, nil
}

// Summarize runs the summarizer chain on the diary text.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	msg, err := s.summarizer.Invoke(ctx, map[string]any{"diary": text})
	if err != nil {
		return "", fmt.Errorf("summarizer invoke failed: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("summarizer returned empty output")
	}
	return strings.TrimSpace(msg.Content), nil
}

// GetChatModel returns the underlying shared model.
func (s *Service) GetChatModel() model.ChatModel {
	return s.chatModel
}

type classifierPayload struct {
	Label string `json:"label"`
}

// parseClassifierOutput extracts the JSON object from the model reply,
// tolerating surrounding prose or code fences.
func parseClassifierOutput(content string) (*classifierPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

const classifierSystemPrompt = "당신은 일기 감정 분류기입니다. 사용자가 쓴 일기 한 편을 읽고 글쓴이의 감정을 판정하세요.\n" +
	"출력 요구사항: JSON 객체 하나만 반환합니다. 필드는 label 하나이며, 값은 반드시 다음 중 하나여야 합니다: " +
	"happy / sad / anxious / embarrassed / angry / heartache / surprise / neutral. 다른 텍스트를 출력하지 마세요."

const classifierUserPrompt = "일기:\n{diary}\n\nJSON으로만 답하세요."

const summarizerSystemPrompt = "당신은 일기 요약기입니다. 일기의 핵심 내용을 한국어 한 문장으로 요약하세요. 요약 문장 외에는 아무것도 출력하지 마세요."

const summarizerUserPrompt = "일기:\n{diary}"
