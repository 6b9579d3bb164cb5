// Package api は全HTTPハンドラーで共有するJSONレスポンスとエラー変換を提供します。
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"habit_backend/internal/domain"
)

// ErrorResponse は失敗したリクエストのレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse はリソースを返さない更新系のレスポンスボディです。
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusFor はドメインエラーの種別をHTTPステータスに変換します。
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindConstraint:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError はerrをクライアントに返します。
// 種別付きのエラーはそのメッセージを返し、それ以外はログに出力してfallbackに置き換えます。
func WriteError(c *gin.Context, op string, err error, fallback string) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)

	if kind == domain.KindUnexpected {
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}

	slog.Warn(op+" rejected", "kind", kind.String(), "error", err, "remote_addr", c.ClientIP())
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// InvalidRequest はバインド失敗時にクライアントへ返す固定メッセージです。
const InvalidRequest = "Invalid request"

// WriteBindError はボディ・クエリ・パスのバインドに失敗したリクエストを400で拒否します。
// 詳細はログにのみ出力し、クライアントにはJSON上のフィールド名と理由だけを返します。
func WriteBindError(c *gin.Context, op string, err error) {
	slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: BindErrorMessage(err)})
}

// BindErrorMessage はバインドエラーを内部情報を含まないメッセージに変換します。
func BindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s: %s %s", InvalidRequest, fe.Field(), describe(fe))
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s: %s has the wrong type", InvalidRequest, typeErr.Field)
	}
	return InvalidRequest
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "hexcolor6":
		return "must be a #RRGGBB color"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
		default:
			return fmt.Sprintf("must be %s %s", bound, fe.Param())
		}
	default:
		return "is invalid"
	}
}
