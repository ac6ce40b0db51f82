package medicine

import (
	"embed"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/park285/pharmacist-relay-go/internal/prompt"
)

//go:embed prompts/*.yml
var promptsFS embed.FS

const (
	answerPrompt  = "answer"
	templateField = "template"
	questionField = "question"
	labelMedicine = "medicine"
)

// Prompts 는 약품 질의 프롬프트 모음이다.
type Prompts struct {
	template string
	fixed    map[string]string
}

// NewPrompts 는 내장 YAML 로부터 프롬프트를 로드하고 템플릿 자리표시자를 검증한다.
func NewPrompts() (*Prompts, error) {
	bundle, err := prompt.LoadBundle(promptsFS, "prompts", labelMedicine)
	if err != nil {
		return nil, fmt.Errorf("load medicine prompts: %w", err)
	}
	return newPromptsFromBundle(bundle)
}

func newPromptsFromBundle(bundle *prompt.Bundle) (*Prompts, error) {
	template, err := bundle.Field(answerPrompt, templateField)
	if err != nil {
		return nil, err
	}

	fixed := make(map[string]string)
	hasQuestion := false
	for _, key := range prompt.Placeholders(template) {
		if key == questionField {
			hasQuestion = true
			continue
		}
		value, err := bundle.Field(answerPrompt, key)
		if err != nil {
			return nil, err
		}
		fixed[key] = value
	}
	if !hasQuestion {
		return nil, fmt.Errorf("medicine prompt template must reference {%s}", questionField)
	}

	return &Prompts{template: template, fixed: fixed}, nil
}

// BuildPrompt 는 지시문, 출력 형식, 질문을 하나의 프롬프트로 합친다.
// 질문은 NFC 정규화 외에는 그대로 삽입된다.
func (p *Prompts) BuildPrompt(question string) (string, error) {
	if p == nil {
		return "", fmt.Errorf("medicine prompts not initialized")
	}

	values := make(map[string]string, len(p.fixed)+1)
	for key, value := range p.fixed {
		values[key] = value
	}
	values[questionField] = norm.NFC.String(question)

	formatted, err := prompt.FormatTemplate(p.template, values)
	if err != nil {
		return "", fmt.Errorf("format answer prompt: %w", err)
	}
	return formatted, nil
}
