// Package domain は全フィーチャーで共有するエラー分類を定義します。
// ユースケースは*Errorを返し、トランスポート層はストレージやドライバのエラーを
// 調べることなくステータスコードに変換します。
package domain

import "errors"

// Kind はドメインエラーの種別です。
type Kind int

const (
	// KindUnexpected はストレージやインフラの障害です。
	KindUnexpected Kind = iota
	// KindValidation は不正または範囲外の入力です。
	KindValidation
	// KindAuth は認証情報の欠落・不正・期限切れです。
	KindAuth
	// KindNotFound は対象が存在しないか、呼び出し元の所有でないことを示します。
	KindNotFound
	// KindConflict は一意性違反です。
	KindConflict
	// KindConstraint は参照整合性違反です。
	KindConstraint
)

// String はログ出力に使う種別名を返します。
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindConstraint:
		return "constraint"
	default:
		return "unexpected"
	}
}

// Error は種別付きのエラーです。Messageはそのままクライアントに返せる文言です。
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError は種別付きのエラーを生成します。
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation はKindValidationのエラーを生成します。
func Validation(message string) *Error { return NewError(KindValidation, message) }

// Auth はKindAuthのエラーを生成します。
func Auth(message string) *Error { return NewError(KindAuth, message) }

// NotFound はKindNotFoundのエラーを生成します。
func NotFound(message string) *Error { return NewError(KindNotFound, message) }

// Conflict はKindConflictのエラーを生成します。
func Conflict(message string) *Error { return NewError(KindConflict, message) }

// Constraint はKindConstraintのエラーを生成します。
func Constraint(message string) *Error { return NewError(KindConstraint, message) }

// KindOf はerrの種別を返します。ラップされたドライバエラーなど
// *ErrorでないエラーはKindUnexpectedになります。
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}

// IsKind はerrの種別がkindかを返します。
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
