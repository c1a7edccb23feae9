package forms

import (
	"errors"
	"fmt"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

type FieldType string

const (
	TypeText    FieldType = "text"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeDate    FieldType = "date"
	TypeTime    FieldType = "time"
	TypeBool    FieldType = "bool"
)

// FieldRule declares how one form field is checked. Tags are validator tags
// applied to the typed value, e.g. "gte=0,lte=90" or "not_past_date".
type FieldRule struct {
	Field    string
	Label    string
	Type     FieldType
	Required bool
	Tags     string
}

type Ruleset struct {
	Fields []FieldRule
	Cross  []CrossFieldRule
}

func (r Ruleset) label(field string) string {
	for _, rule := range r.Fields {
		if rule.Field == field {
			return rule.Label
		}
	}
	return field
}

// Result holds the typed values of every field that parsed and the error
// message of every field that did not pass. Typed values are decimal.Decimal
// for numbers, int64 for integers, time.Time for dates, minutes since
// midnight for times, string for text and bool for flags.
type Result struct {
	Values map[string]any
	Errors map[string]string
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Engine evaluates rulesets. It is pure apart from reading the clock used by
// not_past_date, which is injected.
type Engine struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	engine := &Engine{validate: validator.New(), now: now}
	engine.mustRegister("notblank", validators.NotBlank)
	engine.mustRegister("not_past_date", engine.validateNotPastDate)
	return engine
}

// mustRegister panics on a bad tag: a ruleset naming an unregistered tag
// would otherwise fail every field at runtime.
func (e *Engine) mustRegister(tag string, fn validator.Func) {
	if err := e.validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: register validation %q: %v", tag, err))
	}
}

func (e *Engine) validateNotPastDate(fl validator.FieldLevel) bool {
	return utils.IsDateNotBefore(fl.Field().String(), e.now())
}

// Validate checks every field of ruleset and returns field -> message. An
// empty map means the step may advance.
func (e *Engine) Validate(fields map[string]any, ruleset Ruleset) map[string]string {
	return e.Evaluate(fields, ruleset).Errors
}

func (e *Engine) Evaluate(fields map[string]any, ruleset Ruleset) Result {
	result := Result{
		Values: make(map[string]any, len(ruleset.Fields)),
		Errors: make(map[string]string),
	}

	for _, rule := range ruleset.Fields {
		raw, present := presentValue(fields[rule.Field])
		if !present {
			if rule.Required {
				result.Errors[rule.Field] = exceptions.FormatValidationMessage(rule.Label, "required", "")
			}
			continue
		}

		typed, checked, err := convert(rule.Type, raw)
		if err != nil {
			result.Errors[rule.Field] = exceptions.FormatValidationMessage(rule.Label, conversionTag(rule.Type), "")
			continue
		}

		if rule.Tags != "" {
			if message, failed := e.checkTags(rule, checked); failed {
				result.Errors[rule.Field] = message
				continue
			}
		}
		result.Values[rule.Field] = typed
	}

	for _, cross := range ruleset.Cross {
		if _, failed := result.Errors[cross.Field]; failed {
			continue
		}
		if _, failed := result.Errors[cross.Other]; failed {
			continue
		}
		left, leftOK := result.Values[cross.Field]
		right, rightOK := result.Values[cross.Other]
		if !leftOK || !rightOK {
			continue
		}
		if !cross.holds(left, right) {
			result.Errors[cross.Field] = exceptions.FormatValidationMessage(ruleset.label(cross.Field), cross.Tag, ruleset.label(cross.Other))
			delete(result.Values, cross.Field)
		}
	}

	return result
}

func (e *Engine) checkTags(rule FieldRule, value any) (string, bool) {
	err := e.validate.Var(value, rule.Tags)
	if err == nil {
		return "", false
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return exceptions.FormatValidationMessage(rule.Label, first.Tag(), first.Param()), true
	}
	return exceptions.FormatValidationMessage(rule.Label, "", ""), true
}

// presentValue treats nil and whitespace-only strings as absent.
func presentValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		return v, true
	default:
		return v, true
	}
}

// convert returns the typed value kept in Result and the value handed to the
// validator tags.
func convert(fieldType FieldType, raw any) (typed any, checked any, err error) {
	switch fieldType {
	case TypeNumber:
		amount, ok := models.ToDecimal(raw)
		if !ok {
			return nil, nil, fmt.Errorf("not a number: %v", raw)
		}
		return amount, amount.InexactFloat64(), nil
	case TypeInteger:
		amount, ok := models.ToDecimal(raw)
		if !ok || !amount.Equal(amount.Truncate(0)) {
			return nil, nil, fmt.Errorf("not an integer: %v", raw)
		}
		return amount.IntPart(), amount.IntPart(), nil
	case TypeDate:
		text, ok := raw.(string)
		if !ok {
			return nil, nil, fmt.Errorf("not a date: %v", raw)
		}
		text = strings.TrimSpace(text)
		date, err := utils.ParseDateIn(text, time.Local)
		if err != nil {
			return nil, nil, err
		}
		return date, text, nil
	case TypeTime:
		text, ok := raw.(string)
		if !ok {
			return nil, nil, fmt.Errorf("not a time: %v", raw)
		}
		text = strings.TrimSpace(text)
		minutes, err := utils.ParseClock(text)
		if err != nil {
			return nil, nil, err
		}
		return minutes, text, nil
	case TypeBool:
		switch v := raw.(type) {
		case bool:
			return v, v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return true, true, nil
			case "false":
				return false, false, nil
			}
		}
		return nil, nil, fmt.Errorf("not a boolean: %v", raw)
	default:
		text, ok := raw.(string)
		if !ok {
			text = fmt.Sprint(raw)
		}
		return strings.TrimSpace(text), text, nil
	}
}

func conversionTag(fieldType FieldType) string {
	switch fieldType {
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeDate:
		return "date"
	case TypeTime:
		return "clock"
	default:
		return ""
	}
}

// ClearFieldError drops the error shown for field after the user edits it.
// No re-validation happens until the next Validate call.
func ClearFieldError(fieldErrors map[string]string, field string) map[string]string {
	cleared := make(map[string]string, len(fieldErrors))
	for name, message := range fieldErrors {
		if name != field {
			cleared[name] = message
		}
	}
	return cleared
}

// DecimalValue reads a typed number from a Result, defaulting to zero.
func DecimalValue(values map[string]any, field string) decimal.Decimal {
	amount, _ := values[field].(decimal.Decimal)
	return amount
}

// DateKey formats a typed date value back to its wire form.
func DateKey(value time.Time) string {
	return value.Format(constvars.DateLayout)
}
