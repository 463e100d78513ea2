package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

const maxFormMemory = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct переводит ошибки валидатора в доменные: required -> ErrMissingField
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	if missing, ok := lo.Find(verrs, func(fe validator.FieldError) bool { return fe.Tag() == "required" }); ok {
		return fmt.Errorf("%w: %s", models.ErrMissingField, missing.Field())
	}

	msgs := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		if fe.Param() != "" {
			return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag())
	})
	return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(msgs, "; "))
}

// parseForm разбирает urlencoded или multipart тело
func parseForm(r *http.Request) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return fmt.Errorf("%w: malformed form body", models.ErrValidation)
	}
	return nil
}

// formList читает список из JSON-массива в строке, повторяющихся полей или строки через запятую
func formList(r *http.Request, name string) ([]string, error) {
	values := r.Form[name]
	if len(values) > 1 {
		return values, nil
	}

	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("%w: %s must be a JSON array of strings", models.ErrValidation, name)
		}
		return list, nil
	}

	return lo.FilterMap(strings.Split(raw, ","), func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	}), nil
}

func formInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, name)
	}
	return n, nil
}

// formDecimal возвращает nil, если поле не передано или пустое
func formDecimal(r *http.Request, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", models.ErrValidation, name)
	}
	return &d, nil
}

// firstValue первое непустое значение из нескольких имен поля
func firstValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.FormValue(name); v != "" {
			return v
		}
	}
	return ""
}

func queryInt(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return n
}
