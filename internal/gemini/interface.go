package gemini

import (
	"context"

	"github.com/park285/pharmacist-relay-go/internal/llm"
)

// Generator 는 프롬프트 하나를 보내고 텍스트 하나를 받는 모델 호출 인터페이스다.
// 테스트에서 mock 구현을 주입할 수 있도록 한다.
type Generator interface {
	Generate(ctx context.Context, prompt string) (llm.GenerateResult, error)
}

// Client가 Generator 인터페이스를 구현하는지 컴파일 타임 확인
var _ Generator = (*Client)(nil)
