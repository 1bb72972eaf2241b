// README: Closed error taxonomy with user-safe messages and retry hints.
package recommend

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the pipeline can surface. The set is closed:
// callers switch on it for HTTP status and retry behaviour.
type Kind string

const (
	KindNoResults              Kind = "NO_RESULTS"
	KindInvalidLocation        Kind = "INVALID_LOCATION"
	KindSearchFailed           Kind = "SEARCH_FAILED"
	KindAPIUnavailable         Kind = "API_UNAVAILABLE"
	KindAPILimitExceeded       Kind = "API_LIMIT_EXCEEDED"
	KindInvalidAPIResponse     Kind = "INVALID_API_RESPONSE"
	KindNoQualifiedRestaurants Kind = "NO_QUALIFIED_RESTAURANTS"
	KindAIAnalysisFailed       Kind = "AI_ANALYSIS_FAILED"
	KindAITimeout              Kind = "AI_TIMEOUT"
	KindCacheError             Kind = "CACHE_ERROR"
	KindDataFetchError         Kind = "DATA_FETCH_ERROR"
	KindValidationError        Kind = "VALIDATION_ERROR"
)

// userMessages are the only strings ever shown to end users. Raw provider
// errors never cross the pipeline boundary.
var userMessages = map[Kind]string{
	KindNoResults:              "条件に合うレストランが見つかりませんでした。条件を変えてお試しください。",
	KindInvalidLocation:        "場所を特定できませんでした。場所の指定を見直してください。",
	KindSearchFailed:           "レストラン検索サービスが混み合っています。しばらくしてからもう一度お試しください。",
	KindAPIUnavailable:         "レストラン検索サービスを現在利用できません。しばらくしてからお試しください。",
	KindAPILimitExceeded:       "アクセスが集中しています。少し時間をおいてからお試しください。",
	KindInvalidAPIResponse:     "検索結果の取得に失敗しました。もう一度お試しください。",
	KindNoQualifiedRestaurants: "条件を満たすレストランがありませんでした。評価の条件を下げてお試しください。",
	KindAIAnalysisFailed:       "AI分析が混み合っています。しばらくしてから再度お試しください。",
	KindAITimeout:              "AI分析がタイムアウトしました。しばらくしてから再度お試しください。",
	KindCacheError:             "データの取得に失敗しました。もう一度お試しください。",
	KindDataFetchError:         "データの取得に失敗しました。もう一度お試しください。",
	KindValidationError:        "入力内容に誤りがあります。内容を確認してください。",
}

// retryableKinds marks the failures where a later identical request may
// succeed without any change by the user.
var retryableKinds = map[Kind]bool{
	KindSearchFailed:     true,
	KindAPIUnavailable:   true,
	KindAPILimitExceeded: true,
	KindAIAnalysisFailed: true,
	KindAITimeout:        true,
}

// Error is a classified pipeline failure. The wrapped cause is for logs only.
type Error struct {
	Kind  Kind
	cause error
}

func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage returns the localized, user-safe message for this failure.
func (e *Error) UserMessage() string {
	if msg, ok := userMessages[e.Kind]; ok {
		return msg
	}
	return userMessages[KindInvalidAPIResponse]
}

// Retryable reports whether the caller may usefully retry unchanged.
func (e *Error) Retryable() bool { return retryableKinds[e.Kind] }

// KindOf extracts the taxonomy kind from any error, or "" when the error is
// not a pipeline Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
