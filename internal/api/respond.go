package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"halcon-service/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerTagNames sync.Once

// bindingValidator returns gin's validator with field errors reported under
// their JSON names.
func bindingValidator() binding.StructValidator {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(f reflect.StructField) string {
				name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
				if name == "" || name == "-" {
					return f.Name
				}
				return name
			})
		}
	})
	return binding.Validator
}

// bindJSON decodes and validates a single JSON object body
func bindJSON(c *gin.Context, dest any) error {
	bindingValidator()
	if err := c.ShouldBindJSON(dest); err != nil {
		return bindingError(err, "")
	}
	return nil
}

// bindBatch decodes a JSON array body and validates every element. Field
// errors are keyed by position, e.g. "items[1].quantity".
func bindBatch[T any](c *gin.Context, dest *[]T) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return apperr.Wrap(apperr.CodeValidation, err, "invalid request body")
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return apperr.Validation("request body must be a JSON array of line items")
	}
	if err := json.Unmarshal([]byte(trimmed), dest); err != nil {
		return bindingError(err, "")
	}

	v := bindingValidator()
	details := map[string]string{}
	for i := range *dest {
		if err := v.ValidateStruct(&(*dest)[i]); err != nil {
			typed := bindingError(err, fmt.Sprintf("items[%d].", i))
			fields, ok := typed.Details().(map[string]string)
			if !ok {
				return typed
			}
			for k, msg := range fields {
				details[k] = msg
			}
		}
	}
	if len(details) > 0 {
		return apperr.Validation("validation failed").WithDetails(details)
	}
	return nil
}

func bindingError(err error, prefix string) *apperr.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := map[string]string{}
		for _, fe := range verrs {
			details[prefix+fe.Field()] = validationMessage(fe)
		}
		return apperr.Validation("validation failed").WithDetails(details)
	}
	return apperr.Wrap(apperr.CodeValidation, err, "invalid request body").
		WithDetails(map[string]any{"error": err.Error()})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}

func int64Param(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.Newf(apperr.CodeValidation, "invalid %s", name).
			WithDetails(map[string]string{name: "must be an integer"})
	}
	return id, nil
}

// writeError renders err as {"error", "code", "detail"}. Store errors only
// expose the public message; the cause goes to the log.
func (h *Handler) writeError(c *gin.Context, err error) {
	typed := apperr.As(err)
	if typed == nil {
		typed = apperr.Wrap(apperr.CodeStore, err, "unexpected error")
	}
	meta := apperr.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if typed.Code() != apperr.CodeStore && typed.Message() != "" {
		msg = typed.Message()
	}

	body := gin.H{
		"error": msg,
		"code":  string(typed.Code()),
	}
	if meta.DetailsAllowed && typed.Details() != nil {
		body["detail"] = typed.Details()
	}

	fields := []zap.Field{
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("code", string(typed.Code())),
		zap.Error(err),
	}
	if meta.HTTPStatus >= http.StatusInternalServerError {
		if d := typed.Details(); d != nil {
			fields = append(fields, zap.Any("details", d))
		}
		h.logger.Error("Request failed", fields...)
	} else {
		h.logger.Debug("Request rejected", fields...)
	}

	c.AbortWithStatusJSON(meta.HTTPStatus, body)
}

func created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{"message": message, "data": data})
}

func ack(c *gin.Context, message string, data any) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}
