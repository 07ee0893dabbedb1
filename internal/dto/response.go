package dto

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	res "terminal-terrace/blog-api/packages/response"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

// CreatedResponse 资源创建成功，返回 201
func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.SuccessResponse(data))
}

// ErrorResponse HTTP 状态码由业务错误码映射得出
// 内部错误只在服务端日志里保留原因，对外是统一消息
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	if err.Err != nil {
		zap.L().Error(err.Msg,
			zap.String("code", string(err.Code)),
			zap.String("path", c.FullPath()),
			zap.Error(err.Err),
		)
	}
	c.JSON(err.Code.HTTPStatus(), res.ErrorResponse(err.Code, err.Msg, err.Details))
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	// 尝试转换为 validator.ValidationErrors
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			firstErr := validationErrs[0]
			jsonField := getJSONFieldName(firstErr)

			// 构造友好的错误消息
			var message string
			switch firstErr.Tag() {
			case "required":
				message = fmt.Sprintf("字段 '%s' 是必填项", jsonField)
			case "max":
				message = fmt.Sprintf("字段 '%s' 长度不能超过 %s", jsonField, firstErr.Param())
			case "min":
				message = fmt.Sprintf("字段 '%s' 长度不能少于 %s", jsonField, firstErr.Param())
			case "oneof":
				message = fmt.Sprintf("字段 '%s' 必须是以下值之一: %s", jsonField, firstErr.Param())
			default:
				message = fmt.Sprintf("字段 '%s' 验证失败: %s", jsonField, firstErr.Tag())
			}

			ErrorResponse(c, res.NewBusinessError(
				res.WithErrorCode(res.ValidationError),
				res.WithErrorMessage(message),
				res.WithErrorDetails(gin.H{"field": jsonField}),
			))
			return
		}
	}

	// 非 validation 错误（JSON 解析失败等）统一按 BAD_REQUEST 处理
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.BadRequest),
		res.WithErrorMessage("请求体解析失败: "+err.Error()),
	))
}

// getJSONFieldName 获取字段的JSON标签名称
func getJSONFieldName(fe validator.FieldError) string {
	field := fe.StructNamespace()
	if strings.Contains(field, ".") {
		parts := strings.Split(field, ".")
		if len(parts) > 1 {
			return toSnakeCase(parts[len(parts)-1])
		}
	}
	return toSnakeCase(fe.Field())
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
