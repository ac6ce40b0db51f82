package medicine

import "fmt"

// InvocationError 는 외부 모델 호출 실패를 나타낸다.
// 인증, 할당량, 네트워크 실패를 구분하지 않는다.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string {
	if e == nil || e.Err == nil {
		return "external invocation failed"
	}
	return e.Err.Error()
}

func (e *InvocationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newInvocationError(format string, args ...any) *InvocationError {
	return &InvocationError{Err: fmt.Errorf(format, args...)}
}
