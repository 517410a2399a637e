package ez

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// IsClock HH:MM 或 HH:MM:SS
func IsClock(s string) bool { return clockRe.MatchString(s) }

var setupOnce sync.Once

// SetupValidator 在 gin 默认校验器上注册 clock、notblank 标签，并让错误里的字段名用 json 名
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return IsClock(fl.Field().String())
		})
		// required 只看零值，全空白串也能过
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	})
}
