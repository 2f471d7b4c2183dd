package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// minReportYear 报表/月份查询允许的最早年份
const minReportYear = 2000

func init() {
	// 错误信息使用 json/form 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	}
}

// bindOrAbort 绑定请求体，失败时写入 400 并返回 false
// 表单请求按 form 标签绑定，其余一律按 JSON
func bindOrAbort(c *gin.Context, obj interface{}) bool {
	var err error
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm, gin.MIMEPOSTForm:
		err = c.ShouldBind(obj)
	default:
		err = c.ShouldBindJSON(obj)
	}
	if err != nil {
		BadRequest(c, bindErrorMessages(err)...)
		return false
	}
	return true
}

// bindErrorMessages 将绑定/校验错误转为可读信息
func bindErrorMessages(err error) []string {
	var sliceErrs binding.SliceValidationError
	if errors.As(err, &sliceErrs) {
		var msgs []string
		for i, e := range sliceErrs {
			if e == nil {
				continue
			}
			for _, m := range bindErrorMessages(e) {
				msgs = append(msgs, fmt.Sprintf("[%d] %s", i, m))
			}
		}
		return msgs
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldErrorMessage(fe))
		}
		return msgs
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s has an invalid type", typeErr.Field)}
	}
	return []string{"invalid request body"}
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "alphanum":
		return field + " must contain only letters and numbers"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// parseID 解析路径参数 :id，须为正整数
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// parseMonthYear 解析 :month/:year，month 1-12，year 2000 至明年
func parseMonthYear(c *gin.Context) (int, int, bool) {
	var msgs []string

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		msgs = append(msgs, "month must be an integer between 1 and 12")
	}

	maxYear := time.Now().Year() + 1
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < minReportYear || year > maxYear {
		msgs = append(msgs, fmt.Sprintf("year must be an integer between %d and %d", minReportYear, maxYear))
	}

	if len(msgs) > 0 {
		BadRequest(c, msgs...)
		return 0, 0, false
	}
	return month, year, true
}

// parseDate 支持 YYYY-MM-DD 与 RFC3339，只保留日期部分
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
