package llm

// Usage: 토큰 사용량 정보를 담습니다.
type Usage struct {
	InputTokens     int `json:"input_tokens"`
	OutputTokens    int `json:"output_tokens"`
	TotalTokens     int `json:"total_tokens"`
	ReasoningTokens int `json:"reasoning_tokens"`
	CachedTokens    int `json:"cached_tokens"`
}

// CacheHitRatio: 캐시 적중률을 계산합니다 (0.0 ~ 1.0).
func (u Usage) CacheHitRatio() float64 {
	if u.InputTokens == 0 {
		return 0
	}
	return float64(u.CachedTokens) / float64(u.InputTokens)
}

// GenerateResult: 모델 응답 텍스트와 사용량입니다.
type GenerateResult struct {
	Text  string
	Model string
	Usage Usage
}
