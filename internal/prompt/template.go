package prompt

import (
	"fmt"
	"strings"
)

// FormatTemplate: {key} 자리표시자를 values 로 치환합니다.
// "{{" 와 "}}" 는 각각 리터럴 중괄호로 출력됩니다.
func FormatTemplate(template string, values map[string]string) (string, error) {
	var builder strings.Builder
	builder.Grow(len(template))

	for i := 0; i < len(template); {
		ch := template[i]
		if (ch == '{' || ch == '}') && i+1 < len(template) && template[i+1] == ch {
			builder.WriteByte(ch)
			i += 2
			continue
		}

		switch ch {
		case '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("invalid template: missing '}' at offset %d", i)
			}
			key := template[i+1 : i+1+end]
			value, ok := values[key]
			if !ok {
				return "", fmt.Errorf("missing template value for %q", key)
			}
			builder.WriteString(value)
			i += end + 2
		case '}':
			return "", fmt.Errorf("invalid template: unexpected '}' at offset %d", i)
		default:
			builder.WriteByte(ch)
			i++
		}
	}

	return builder.String(), nil
}

// Placeholders: 템플릿이 참조하는 키 목록을 등장 순서대로 반환합니다.
func Placeholders(template string) []string {
	keys := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for i := 0; i < len(template); {
		ch := template[i]
		if (ch == '{' || ch == '}') && i+1 < len(template) && template[i+1] == ch {
			i += 2
			continue
		}
		if ch != '{' {
			i++
			continue
		}
		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			break
		}
		key := template[i+1 : i+1+end]
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
		i += end + 2
	}
	return keys
}
