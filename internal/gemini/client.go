package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/park285/pharmacist-relay-go/internal/config"
	"github.com/park285/pharmacist-relay-go/internal/llm"
	"github.com/park285/pharmacist-relay-go/internal/metrics"
)

var (
	// ErrMissingAPIKey 는 Gemini API 키가 없을 때 반환된다.
	ErrMissingAPIKey = errors.New("missing gemini api key")
	// ErrInvalidModel 는 모델 이름이 비어 있을 때 반환된다.
	ErrInvalidModel = errors.New("invalid model")
	// ErrEmptyResponse 는 응답에 후보 텍스트가 하나도 없을 때 반환된다. 차단된 응답도 포함한다.
	ErrEmptyResponse = errors.New("model returned no candidate text")
)

// Client 는 Gemini 호출을 담당한다.
// API 키별 genai 클라이언트는 처음 사용할 때 만들고 이후 재사용한다.
type Client struct {
	cfg       config.GeminiConfig
	metrics   *metrics.Store
	mu        sync.Mutex
	clients   map[string]*genai.Client
	apiKeys   []string
	apiKeyIdx int
}

// NewClient 는 Gemini 클라이언트를 생성한다.
func NewClient(cfg *config.Config, metricsStore *metrics.Store) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if metricsStore == nil {
		return nil, errors.New("metrics store is nil")
	}
	if len(cfg.Gemini.APIKeys) == 0 {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		cfg:     cfg.Gemini,
		metrics: metricsStore,
		clients: make(map[string]*genai.Client),
		apiKeys: cfg.Gemini.APIKeys,
	}, nil
}

// Generate 는 프롬프트를 한 번 전송하고 응답 텍스트를 반환한다. 재시도하지 않는다.
func (c *Client) Generate(ctx context.Context, prompt string) (llm.GenerateResult, error) {
	start := time.Now()
	model := c.cfg.Model

	response, err := c.generate(ctx, model, prompt)
	if err != nil {
		c.metrics.RecordError(time.Since(start))
		return llm.GenerateResult{Model: model}, err
	}

	texts := extractText(response)
	if len(texts) == 0 {
		c.metrics.RecordError(time.Since(start))
		return llm.GenerateResult{Model: model}, emptyResponseError(response)
	}

	usage := extractUsage(response)
	c.metrics.RecordSuccess(time.Since(start), usage)
	return llm.GenerateResult{
		Text:  strings.Join(texts, ""),
		Model: model,
		Usage: usage,
	}, nil
}

func (c *Client) generate(ctx context.Context, model string, prompt string) (*genai.GenerateContentResponse, error) {
	if strings.TrimSpace(model) == "" {
		return nil, ErrInvalidModel
	}

	client, err := c.selectClient(ctx)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	// SDK 오류 문자열은 응답 detail 로 그대로 노출되므로 감싸지 않는다.
	response, err := client.Models.GenerateContent(ctx, model, contents, buildGenerateConfig(c.cfg))
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (c *Client) selectClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.nextKeyLocked()
	if !ok {
		return nil, ErrMissingAPIKey
	}
	if client, ok := c.clients[key]; ok {
		return client, nil
	}

	client, err := genai.NewClient(context.WithoutCancel(ctx), &genai.ClientConfig{
		APIKey:      key,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: buildHTTPOptions(c.cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.clients[key] = client
	return client, nil
}

// nextKeyLocked 는 라운드로빈으로 다음 API 키를 고른다. c.mu 를 잡은 상태에서 호출한다.
func (c *Client) nextKeyLocked() (string, bool) {
	if len(c.apiKeys) == 0 {
		return "", false
	}
	key := c.apiKeys[c.apiKeyIdx%len(c.apiKeys)]
	c.apiKeyIdx++
	return key, true
}

func buildHTTPOptions(cfg config.GeminiConfig) genai.HTTPOptions {
	options := genai.HTTPOptions{}
	if cfg.BaseURL != "" {
		options.BaseURL = cfg.BaseURL
	}
	if cfg.TimeoutSeconds > 0 {
		options.Timeout = genai.Ptr(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}
	return options
}

func buildGenerateConfig(cfg config.GeminiConfig) *genai.GenerateContentConfig {
	generateConfig := &genai.GenerateContentConfig{}
	if cfg.Temperature != nil {
		generateConfig.Temperature = genai.Ptr(float32(*cfg.Temperature))
	}
	if cfg.MaxOutputTokens > 0 {
		generateConfig.MaxOutputTokens = int32(cfg.MaxOutputTokens)
	}
	return generateConfig
}

func extractText(response *genai.GenerateContentResponse) []string {
	if response == nil || len(response.Candidates) == 0 {
		return nil
	}
	content := response.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil
	}

	texts := make([]string, 0, len(content.Parts))
	for _, part := range content.Parts {
		if part == nil || part.Text == "" || part.Thought {
			continue
		}
		texts = append(texts, part.Text)
	}
	return texts
}

func emptyResponseError(response *genai.GenerateContentResponse) error {
	if response != nil && response.PromptFeedback != nil && response.PromptFeedback.BlockReason != "" {
		return fmt.Errorf("%w: block_reason=%s", ErrEmptyResponse, response.PromptFeedback.BlockReason)
	}
	if response != nil && len(response.Candidates) > 0 && response.Candidates[0].FinishReason != "" {
		return fmt.Errorf("%w: finish_reason=%s", ErrEmptyResponse, response.Candidates[0].FinishReason)
	}
	return ErrEmptyResponse
}

func extractUsage(response *genai.GenerateContentResponse) llm.Usage {
	if response == nil || response.UsageMetadata == nil {
		return llm.Usage{}
	}
	usage := response.UsageMetadata
	return llm.Usage{
		InputTokens:     int(usage.PromptTokenCount),
		OutputTokens:    int(usage.CandidatesTokenCount) + int(usage.ThoughtsTokenCount),
		TotalTokens:     int(usage.TotalTokenCount),
		ReasoningTokens: int(usage.ThoughtsTokenCount),
		CachedTokens:    int(usage.CachedContentTokenCount),
	}
}
