// Package model содержит валидаторы для моделей.
//
// Группа: BASE - Базовые компоненты
// Содержит: Validator, ValidationError, ValidationErrors, MalformedRecordError
package model

import (
	"fmt"
	"strings"
)

// Validator представляет интерфейс валидатора
type Validator interface {
	Validate() error
}

// ValidationError представляет ошибку валидации
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors представляет множество ошибок валидации
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// HasErrors проверяет, есть ли ошибки валидации
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Fields возвращает имена полей с ошибками
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, err := range ve {
		fields = append(fields, err.Field)
	}
	return fields
}

// ValidatePresent проверяет, что обязательный ключ присутствует в записи и не равен null
func ValidatePresent(field string, present bool) error {
	if !present {
		return ValidationError{Field: field, Message: "is missing or null"}
	}
	return nil
}

// ValidateRequired проверяет, что поле не пустое
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// MalformedRecordError ошибка разбора или валидации записи входного файла
type MalformedRecordError struct {
	Path string
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed record at %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed record in %s: %v", e.Path, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// collect добавляет ошибку валидации в список
func collect(errs ValidationErrors, err error) ValidationErrors {
	if err == nil {
		return errs
	}
	if ve, ok := err.(ValidationError); ok {
		return append(errs, ve)
	}
	return append(errs, ValidationError{Field: "record", Message: err.Error()})
}
