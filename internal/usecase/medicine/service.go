package medicine

import (
	"context"
	"log/slog"
	"time"

	medicinedomain "github.com/park285/pharmacist-relay-go/internal/domain/medicine"
	"github.com/park285/pharmacist-relay-go/internal/gemini"
)

// Service: 약품 질의 비즈니스 로직 구현체입니다.
type Service struct {
	generator gemini.Generator
	prompts   *medicinedomain.Prompts
	logger    *slog.Logger
}

// New: Service 인스턴스를 생성합니다.
func New(generator gemini.Generator, prompts *medicinedomain.Prompts, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		generator: generator,
		prompts:   prompts,
		logger:    logger,
	}
}

// Answer: 질문을 프롬프트로 만들어 모델에 한 번 전송하고 정규화된 텍스트를 반환합니다.
// 실패는 모두 *InvocationError 로 반환됩니다.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	prompt, err := s.prompts.BuildPrompt(question)
	if err != nil {
		return "", newInvocationError("build prompt: %w", err)
	}

	startedAt := time.Now()
	result, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "medicine_answer_failed",
			"question_len", len(question),
			"latency", time.Since(startedAt),
			"err", err,
		)
		return "", &InvocationError{Err: err}
	}

	answer := medicinedomain.Normalize(result.Text)
	s.logger.DebugContext(ctx, "medicine_answer",
		"model", result.Model,
		"latency", time.Since(startedAt),
		"raw_len", len(result.Text),
		"answer_len", len(answer),
		"input_tokens", result.Usage.InputTokens,
		"output_tokens", result.Usage.OutputTokens,
	)
	return answer, nil
}
