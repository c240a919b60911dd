// Package validation holds the form schemas shared by the API and the
// client, with Vietnamese field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"busbooking/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field/message pair.
type FieldError = domain.FieldError

var vnPhonePattern = regexp.MustCompile(`^0\d{9}$`)

var (
	instance *validator.Validate
	once     sync.Once
)

var labels = map[string]string{
	"fullName":        "Họ và tên",
	"email":           "Email",
	"phone":           "Số điện thoại",
	"password":        "Mật khẩu",
	"confirmPassword": "Xác nhận mật khẩu",
	"currentPassword": "Mật khẩu hiện tại",
	"newPassword":     "Mật khẩu mới",
	"avatarUrl":       "Ảnh đại diện",
	"company":         "Tên nhà xe",
	"message":         "Lời nhắn",
	"role":            "Vai trò",
	"tripId":          "Chuyến xe",
	"passengers":      "Danh sách hành khách",
	"seatNumber":      "Số ghế",
	"couponCode":      "Mã giảm giá",
	"code":            "Mã giảm giá",
	"seats":           "Số ghế",
	"rating":          "Số sao",
	"commentText":     "Nội dung đánh giá",
	"fromCityId":      "Điểm đi",
	"toCityId":        "Điểm đến",
	"departureDate":   "Ngày khởi hành",
	"pageSize":        "Số bản ghi mỗi trang",
	"pageNumber":      "Số trang",
}

// IsVNPhone reports whether s is a 10 digit number starting with 0.
func IsVNPhone(s string) bool {
	return vnPhonePattern.MatchString(s)
}

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("vnphone", func(fl validator.FieldLevel) bool {
			return IsVNPhone(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Validate checks v against its schema. It returns nil when v is valid.
func Validate(v any) []FieldError {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: "dữ liệu không hợp lệ"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// Check wraps Validate into a domain.ValidationError.
func Check(v any) error {
	fields := Validate(v)
	if len(fields) == 0 {
		return nil
	}
	return domain.ValidationError{Msg: fields[0].Message, Fields: fields}
}

// fieldPath drops the root struct name: "SignUp.email" -> "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func label(fe validator.FieldError) string {
	if l, ok := labels[fe.Field()]; ok {
		return l
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	name := label(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s không được để trống", name)
	case "email":
		return "Email không hợp lệ"
	case "vnphone":
		return "Số điện thoại phải gồm 10 chữ số và bắt đầu bằng số 0"
	case "eqfield":
		return fmt.Sprintf("%s không khớp", name)
	case "nefield":
		return fmt.Sprintf("%s không được trùng với %s", name, strings.ToLower(labelOf(fe.Param())))
	case "url":
		return fmt.Sprintf("%s phải là đường dẫn hợp lệ", name)
	case "datetime":
		return fmt.Sprintf("%s phải có định dạng YYYY-MM-DD", name)
	case "oneof":
		return fmt.Sprintf("%s phải là một trong: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s phải có ít nhất %s ký tự", name, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s phải có ít nhất %s mục", name, fe.Param())
		}
		return fmt.Sprintf("%s phải lớn hơn hoặc bằng %s", name, fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s không được vượt quá %s ký tự", name, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s không được vượt quá %s mục", name, fe.Param())
		}
		return fmt.Sprintf("%s phải nhỏ hơn hoặc bằng %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s phải lớn hơn hoặc bằng %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s phải nhỏ hơn hoặc bằng %s", name, fe.Param())
	}
	return fmt.Sprintf("%s không hợp lệ", name)
}

// labelOf maps a Go field name used in cross-field params to its label.
func labelOf(goField string) string {
	if goField == "" {
		return goField
	}
	key := strings.ToLower(goField[:1]) + goField[1:]
	key = strings.Replace(key, "ID", "Id", 1)
	if l, ok := labels[key]; ok {
		return l
	}
	return goField
}
