package api

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"habit_backend/internal/domain/entity"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// IsHexColor はsが7文字の#RRGGBB形式の色かを返します。
func IsHexColor(s string) bool {
	return entity.ValidColor(s)
}

// fieldName はバリデーションエラーに使う名前をjson、uri、formタグの順に解決します。
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// RegisterValidators はginのバリデータにカスタムタグを登録します。
//
//	hexcolor6  #RRGGBB形式の色
//
// あわせてエラーのフィールド名をGoの構造体名ではなくリクエスト上の名前にします。
// 2回目以降の呼び出しは何もしません。
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		registerErr = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
			return IsHexColor(fl.Field().String())
		})
	})
	return registerErr
}
