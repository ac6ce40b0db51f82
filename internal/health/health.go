package health

import (
	"time"

	"github.com/park285/pharmacist-relay-go/internal/config"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
)

var startTime = time.Now()

// Component 는 상태 구성 요소다.
type Component struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail"`
}

// Response 는 상태 응답 본문이다.
type Response struct {
	Status     string               `json:"status"`
	Components map[string]Component `json:"components"`
}

// IsOK 는 모든 구성 요소가 정상인지 보고한다.
func (r Response) IsOK() bool {
	return r.Status == statusOK
}

// Collect 는 헬스 상태를 수집한다.
// 외부 모델에 실제 요청을 보내지 않고 설정만 확인한다.
func Collect(cfg *config.Config) Response {
	components := map[string]Component{
		"app":       buildAppStatus(),
		"gemini":    buildGeminiStatus(cfg),
		"telemetry": buildTelemetryStatus(cfg),
	}

	overall := statusOK
	for _, component := range components {
		if component.Status != statusOK {
			overall = statusDegraded
			break
		}
	}

	return Response{
		Status:     overall,
		Components: components,
	}
}

func buildAppStatus() Component {
	return Component{
		Status: statusOK,
		Detail: map[string]any{
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		},
	}
}

func buildGeminiStatus(cfg *config.Config) Component {
	apiKeyPresent := false
	keyCount := 0
	model := ""
	timeoutSeconds := 0

	if cfg != nil {
		apiKeyPresent = cfg.Gemini.PrimaryKey() != ""
		keyCount = len(cfg.Gemini.APIKeys)
		model = cfg.Gemini.Model
		timeoutSeconds = cfg.Gemini.TimeoutSeconds
	}

	status := statusOK
	if !apiKeyPresent || model == "" {
		status = statusDegraded
	}

	return Component{
		Status: status,
		Detail: map[string]any{
			"api_key_present": apiKeyPresent,
			"api_key_count":   keyCount,
			"model":           model,
			"timeout_seconds": timeoutSeconds,
		},
	}
}

func buildTelemetryStatus(cfg *config.Config) Component {
	detail := map[string]any{"enabled": false}
	if cfg != nil && cfg.Telemetry.Enabled {
		detail["enabled"] = true
		detail["endpoint"] = cfg.Telemetry.OTLPEndpoint
		detail["sample_rate"] = cfg.Telemetry.SampleRate
	}
	return Component{Status: statusOK, Detail: detail}
}
