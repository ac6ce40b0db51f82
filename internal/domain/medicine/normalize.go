package medicine

import "strings"

// Normalize 는 모델 응답의 공백을 정리하고 바깥 대괄호 한 쌍을 제거한다.
// 결과는 구조 검증을 거치지 않은 텍스트다.
func Normalize(raw string) string {
	return TrimOuterBrackets(CollapseWhitespace(raw))
}

// CollapseWhitespace 는 개행을 포함한 연속 공백을 단일 공백으로 바꾸고 앞뒤 공백을 없앤다.
func CollapseWhitespace(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// TrimOuterBrackets 는 첫 글자가 '[' 이고 마지막 글자가 ']' 일 때만 두 글자를 제거한다.
func TrimOuterBrackets(text string) string {
	if len(text) >= 2 && text[0] == '[' && text[len(text)-1] == ']' {
		return text[1 : len(text)-1]
	}
	return text
}
