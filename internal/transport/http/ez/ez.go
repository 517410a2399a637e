// Package ez 一行注册接口：绑定入参、鉴权、执行、统一错误映射和响应包装。
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-gin-gorm-todo/internal/domain"
	resp "go-gin-gorm-todo/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Group 返回底层分组，给需要直接挂 gin handler 的地方用
func (e EZ) Group() *gin.RouterGroup { return e.g }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // 自己从 c.Param 取
)

// AErr 接口层错误，Code 即 HTTP 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error      { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error    { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error       { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error        { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error        { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func TooManyRequests(msg string) error { return &AErr{Code: resp.CodeTooManyRequests, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action I 入参，O 出参；Status 为 0 时按 200 返回
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool     // 要求 userId
	Roles   []string // 限定角色
	Status  int
	Handler func(c *gin.Context, in *I) (O, error)
}

const (
	CtxUserID = "userId"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// UserID 由 AuthJWT 写入
func UserID(c *gin.Context) string { return c.GetString(CtxUserID) }

func Register[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		if a.Auth || len(a.Roles) > 0 {
			if UserID(c) == "" {
				Fail(c, Unauthorized("Unauthorized"))
				return
			}
			if len(a.Roles) > 0 && !hasRole(c.GetString(CtxRole), a.Roles) {
				Fail(c, Forbidden("Forbidden"))
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			Fail(c, BadRequest(bindMessage(bindErr)))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// Fail 错误 → 状态码 + 信封。500 只返回固定文案，原因挂到 c.Errors 由访问日志输出
func Fail(c *gin.Context, err error) {
	code, msg := classify(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(code, resp.Error(code, msg))
}

func classify(err error) (int, string) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Code >= http.StatusInternalServerError {
			return ae.Code, resp.CodeMsgMap[ae.Code]
		}
		return ae.Code, ae.Error()
	}

	var de *domain.Error
	msg := ""
	if errors.As(err, &de) {
		msg = de.Msg
	}
	switch {
	case errors.Is(err, domain.ErrConflict):
		return resp.CodeConflict, msg
	case errors.Is(err, domain.ErrUnauthorized):
		return resp.CodeUnauthorized, msg
	case errors.Is(err, domain.ErrNotFound):
		return resp.CodeNotFound, msg
	case errors.Is(err, domain.ErrTooManyAttempts):
		return resp.CodeTooManyRequests, msg
	}
	return resp.CodeServerError, resp.CodeMsgMap[resp.CodeServerError]
}

func bindMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return "request body too large"
		}
		return "invalid request"
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return f + " is required"
	case "email":
		return f + " must be an email"
	case "min":
		return f + " must be at least " + fe.Param() + " characters"
	case "max":
		return f + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return f + " must be one of: " + fe.Param()
	case "clock":
		return f + " must be a time of day (HH:MM or HH:MM:SS)"
	}
	return f + " is invalid"
}
