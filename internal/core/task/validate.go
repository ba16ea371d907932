package task

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/colonyops/todos/pkg/date"
	"github.com/hay-kot/criterio"
)

// Text length bounds, counted in runes after trimming whitespace.
const (
	MinTextLength = 3
	MaxTextLength = 100
)

// Field names used in validation errors.
const (
	FieldText    = "text"
	FieldDueDate = "due_date"
)

var (
	ErrEmptyText   = errors.New("task description is required")
	ErrTooShort    = errors.New("task description must be at least 3 characters")
	ErrTooLong     = errors.New("task description must be less than 100 characters")
	ErrMissingDate = errors.New("due date is required")
	ErrInvalidDate = errors.New("due date must be a date in YYYY-MM-DD format")
	ErrPastDate    = errors.New("due date cannot be in the past")
)

// ValidationResult is the outcome of validating a candidate task. Text and
// DueDate hold the normalized inputs and are meaningful only when Valid.
type ValidationResult struct {
	Text    string
	DueDate date.Date
	Errors  criterio.FieldErrors
}

// Valid reports whether no field failed validation.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the field errors as an error, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// FieldError returns the error recorded for field, or nil.
func (r ValidationResult) FieldError(field string) error {
	for _, fe := range r.Errors {
		if fe.Field == field {
			return fe.Err
		}
	}
	return nil
}

// Validate checks a raw description and due date string. The two fields are
// checked independently so both messages can surface at once. today is the
// calendar date against which past due dates are rejected.
func Validate(text, dueDate string, today date.Date) ValidationResult {
	result := ValidationResult{Text: strings.TrimSpace(text)}

	var errs criterio.FieldErrorsBuilder
	if err := validateText(result.Text); err != nil {
		errs = errs.Append(FieldText, err)
	}

	due, err := validateDueDate(dueDate, today)
	if err != nil {
		errs = errs.Append(FieldDueDate, err)
	}
	result.DueDate = due

	var fieldErrs criterio.FieldErrors
	if errors.As(errs.ToError(), &fieldErrs) {
		result.Errors = fieldErrs
	}
	return result
}

func validateText(trimmed string) error {
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n == 0:
		return ErrEmptyText
	case n < MinTextLength:
		return ErrTooShort
	case n > MaxTextLength:
		return ErrTooLong
	default:
		return nil
	}
}

func validateDueDate(raw string, today date.Date) (date.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return date.Date{}, ErrMissingDate
	}

	due, err := date.Parse(raw)
	if err != nil {
		return date.Date{}, ErrInvalidDate
	}

	if due.Before(today) {
		return due, ErrPastDate
	}
	return due, nil
}
