package validate

import (
	"regexp"
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

var emailRe = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if len(value) > max {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if !emailRe.MatchString(value) {
		return &ErrField{Field: field, Msg: "invalid email address"}
	}
	return nil
}

func MinFloat(field string, v, min float64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatFloat(min, 'f', -1, 64)}
	}
	return nil
}

func FloatRange(field string, v, lo, hi float64) *ErrField {
	if v < lo || v > hi {
		return &ErrField{
			Field: field,
			Msg: "must be between " + strconv.FormatFloat(lo, 'f', -1, 64) +
				" and " + strconv.FormatFloat(hi, 'f', -1, 64),
		}
	}
	return nil
}

func IntRange(field string, v, lo, hi int) *ErrField {
	if v < lo || v > hi {
		return &ErrField{Field: field, Msg: "must be between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi)}
	}
	return nil
}
