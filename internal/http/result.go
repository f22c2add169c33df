package httpapi

// Result envelope shared with the front-end's Axios interceptor
// - code: 2000 on success
// - type: 'success' | 'error' | 'warning'
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultTokenExpired code=60401 + HTTP 401; the front-end diverts to login
	ResultTokenExpired = 60401
	// ResultWrongRole code=60403 + HTTP 403; session terminated, login shows an error indicator
	ResultWrongRole = 60403
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

func FailCode(code int, message string) Result[any] {
	return Result[any]{Code: code, Type: "error", Message: message, Result: nil}
}
