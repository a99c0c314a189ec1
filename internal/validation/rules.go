package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	namePattern      = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	usPhonePattern   = regexp.MustCompile(`^(\+\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)
	intlPhonePattern = regexp.MustCompile(`^\+[1-9]\d{0,3}([\s.-]?\d{2,4}){2,5}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return usPhonePattern.MatchString(s) || intlPhonePattern.MatchString(s)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
	kindLiteralTrue
)

// tagLiteral ключ сообщения для полей, которые обязаны быть ровно true
const tagLiteral = "literal"

// fieldRule правило проверки одного поля
type fieldRule struct {
	field     string
	kind      valueKind
	normalize func(string) string
	tags      string
	messages  map[string]string // тег валидатора -> сообщение
	fallback  string            // сообщение при несоответствии типа
}

// apply извлекает значение поля, приводит его к типу, нормализует и проверяет тегами
// Возвращает нормализованное значение или сообщение об ошибке
func (r fieldRule) apply(rec Record) (any, string) {
	raw, present := rec[r.field]
	if raw == nil {
		present = false
	}

	switch r.kind {
	case kindLiteralTrue:
		if b, ok := raw.(bool); ok && b {
			return true, ""
		}
		return nil, r.messages[tagLiteral]

	case kindBool:
		if !present {
			return false, ""
		}
		b, ok := raw.(bool)
		if !ok {
			return nil, r.fallback
		}
		return b, ""

	case kindInt:
		n := 0
		if present {
			var ok bool
			n, ok = toInt(raw)
			if !ok {
				return nil, r.fallback
			}
		}
		if msg := r.check(n); msg != "" {
			return nil, msg
		}
		return n, ""

	default:
		s := ""
		if present {
			str, ok := raw.(string)
			if !ok {
				return nil, r.fallback
			}
			s = str
		}
		if r.normalize != nil {
			s = r.normalize(s)
		}
		if msg := r.check(s); msg != "" {
			return nil, msg
		}
		return s, ""
	}
}

func (r fieldRule) check(value any) string {
	if r.tags == "" {
		return ""
	}
	err := validate.Var(value, r.tags)
	if err == nil {
		return ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		if msg, ok := r.messages[verrs[0].Tag()]; ok {
			return msg
		}
	}
	return r.fallback
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Нормализаторы

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
