// Package validation проверяет данные шагов мастера бронирования.
//
// Каждая схема принимает «сырую» запись (Record) и возвращает либо нормализованные
// типизированные данные, либо набор ошибок по полям (Errors).
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownField возвращается при валидации поля, которого нет в схеме
var ErrUnknownField = errors.New("validation: unknown field")

// ErrUnknownStep возвращается, если для шага нет схемы
var ErrUnknownStep = errors.New("validation: no schema for step")

// Record сырые данные шага (как пришли от клиента)
type Record map[string]any

// Errors ошибки валидации: путь поля -> человекочитаемое сообщение
type Errors map[string]string

// Error implements error
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors возвращает true, если есть хотя бы одна ошибка
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Only возвращает ошибки, относящиеся к указанному полю
func (e Errors) Only(field string) Errors {
	msg, ok := e[field]
	if !ok {
		return nil
	}
	return Errors{field: msg}
}

func (e Errors) setOnce(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Schema схема одного шага мастера
type Schema[T any] struct {
	name     string
	rules    []fieldRule
	refine   func(normalized Record, errs Errors)
	build    func(normalized Record) T
	defaults Record
}

// Name возвращает имя схемы
func (s *Schema[T]) Name() string {
	return s.name
}

// Fields возвращает список полей схемы в порядке проверки
func (s *Schema[T]) Fields() []string {
	fields := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		fields = append(fields, r.field)
	}
	return fields
}

// Validate проверяет запись целиком
// Возвращает нормализованные данные и nil, либо нулевое значение и ошибки по полям
func (s *Schema[T]) Validate(rec Record) (T, Errors) {
	var zero T

	normalized := make(Record, len(s.rules))
	errs := make(Errors)

	for _, rule := range s.rules {
		value, msg := rule.apply(rec)
		if msg != "" {
			errs[rule.field] = msg
			continue
		}
		normalized[rule.field] = value
	}

	// Кросс-полевые правила выполняются после проверки отдельных полей
	if s.refine != nil {
		s.refine(normalized, errs)
	}

	if errs.HasErrors() {
		return zero, errs
	}
	return s.build(normalized), nil
}

// ValidateField проверяет одно поле: значение подставляется в полный набор значений
// по умолчанию, схема прогоняется целиком, ошибки фильтруются по пути поля
func (s *Schema[T]) ValidateField(field string, value any) (Errors, error) {
	if !s.hasField(field) {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, s.name, field)
	}

	merged := make(Record, len(s.defaults)+1)
	for k, v := range s.defaults {
		merged[k] = v
	}
	merged[field] = value

	_, errs := s.Validate(merged)
	return errs.Only(field), nil
}

func (s *Schema[T]) hasField(field string) bool {
	for _, r := range s.rules {
		if r.field == field {
			return true
		}
	}
	return false
}
