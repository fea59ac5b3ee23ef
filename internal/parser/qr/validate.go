package qr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	amount "github.com/rezonia/atcud-qr/internal/decimal"
	"github.com/rezonia/atcud-qr/internal/model"
)

// rule is the contract of one payload key. tag uses validator syntax plus
// the custom tags registered by NewValidator.
type rule struct {
	key      string
	required bool
	tag      string
}

func amountRule(key string, required bool) rule {
	return rule{key: key, required: required, tag: "amount"}
}

// schema lists the rule of every key, in wire order. Keys not listed are
// ignored.
var schema = buildSchema()

func buildSchema() []rule {
	rules := []rule{
		{key: "A", required: true, tag: "min=8,max=9"},
		{key: "B", required: true, tag: "min=8,max=30"},
		{key: "C", required: true, tag: "min=2,max=12"},
		{key: "D", required: true, tag: "doctype"},
		{key: "E", required: true, tag: "docstatus"},
		{key: "F", required: true, tag: "len=8,qrdate"},
		{key: "G", required: true, tag: "min=1,max=60"},
		{key: "H", required: true, tag: "min=12,max=70"},
	}

	for _, letter := range SectionLetters {
		if letter == "I" {
			rules = append(rules, rule{key: "I1", required: true, tag: "region_or_none"})
		} else {
			rules = append(rules, rule{key: letter + "1", tag: "region"})
		}
		for n := 2; n <= 8; n++ {
			rules = append(rules, amountRule(letter+strconv.Itoa(n), false))
		}
	}

	return append(rules,
		amountRule("L", false),
		amountRule("M", false),
		amountRule("N", true),
		amountRule("O", true),
		amountRule("P", false),
		rule{key: "Q", required: true, tag: "len=4"},
		rule{key: "R", required: true, tag: "len=4,number"},
		rule{key: "S", tag: "min=1,max=65"},
	)
}

// Validator checks raw fields against the QR schema.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the QR-specific tags registered
func NewValidator() *Validator {
	v := validator.New()

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return amount.IsAmount(fl.Field().String())
	}))
	must(v.RegisterValidation("qrdate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
		return model.DocumentType(fl.Field().String()).IsValid()
	}))
	must(v.RegisterValidation("docstatus", func(fl validator.FieldLevel) bool {
		return model.DocumentStatus(fl.Field().String()).IsValid()
	}))
	must(v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return model.CountryRegion(fl.Field().String()).IsValid()
	}))
	must(v.RegisterValidation("region_or_none", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == NoVATRegion || model.CountryRegion(s).IsValid()
	}))

	return &Validator{validate: v}
}

// Check evaluates every rule and returns all violations, in key order.
// It never stops at the first failure.
func (v *Validator) Check(raw RawFields) []model.InvalidField {
	var invalid []model.InvalidField
	for _, r := range schema {
		value, ok := raw.Get(r.key)
		if !ok {
			if r.required {
				invalid = append(invalid, model.InvalidField{Argument: r.key, Message: "Required"})
			}
			continue
		}
		if err := v.validate.Var(value, r.tag); err != nil {
			invalid = append(invalid, model.InvalidField{Argument: r.key, Message: describe(err)})
		}
	}
	return invalid
}

// CheckValid reports whether raw satisfies every rule
func (v *Validator) CheckValid(raw RawFields) bool {
	return len(v.Check(raw)) == 0
}

// Validate checks raw and coerces it into Fields. On any violation it
// returns a *model.ParseError listing all of them.
func (v *Validator) Validate(raw RawFields) (*Fields, error) {
	if invalid := v.Check(raw); len(invalid) > 0 {
		return nil, model.NewParseError(invalid)
	}
	fields, err := coerce(raw)
	if err != nil {
		var ke *keyError
		if errors.As(err, &ke) {
			return nil, model.NewParseError([]model.InvalidField{{Argument: ke.key, Message: ke.err.Error()}})
		}
		return nil, model.NewParseError(nil)
	}
	return fields, nil
}

// keyError ties a coercion failure to its payload key
type keyError struct {
	key string
	err error
}

func (e *keyError) Error() string { return e.key + ": " + e.err.Error() }

func (e *keyError) Unwrap() error { return e.err }

// coerce converts validated raw fields into their semantic types
func coerce(raw RawFields) (*Fields, error) {
	f := &Fields{
		IssuerVAT:      raw["A"],
		BuyerVAT:       raw["B"],
		BuyerCountry:   raw["C"],
		DocumentType:   raw["D"],
		DocumentStatus: raw["E"],
		Number:         raw["G"],
		ATCUD:          raw["H"],
		HashCode:       raw["Q"],
	}

	var err error
	if f.Date, err = parseDate(raw["F"]); err != nil {
		return nil, &keyError{key: "F", err: err}
	}
	if f.CertificationNumber, err = strconv.Atoi(raw["R"]); err != nil {
		return nil, &keyError{key: "R", err: err}
	}

	for i, letter := range SectionLetters {
		section := TaxSection{Region: raw[letter+"1"]}
		for n := range section.Amounts {
			if section.Amounts[n], err = optionalAmount(raw, letter+strconv.Itoa(n+2)); err != nil {
				return nil, err
			}
		}
		f.Sections[i] = section
	}

	if f.NonTaxableAmount, err = optionalAmount(raw, "L"); err != nil {
		return nil, err
	}
	if f.StampTax, err = optionalAmount(raw, "M"); err != nil {
		return nil, err
	}
	if f.WithholdingTax, err = optionalAmount(raw, "P"); err != nil {
		return nil, err
	}
	if f.TaxTotal, err = amount.ParseAmount(raw["N"]); err != nil {
		return nil, &keyError{key: "N", err: err}
	}
	if f.Total, err = amount.ParseAmount(raw["O"]); err != nil {
		return nil, &keyError{key: "O", err: err}
	}

	if s, ok := raw.Get("S"); ok {
		f.OtherInfo = &s
	}

	return f, nil
}

func optionalAmount(raw RawFields, key string) (*decimal.Decimal, error) {
	s, ok := raw.Get(key)
	if !ok {
		return nil, nil
	}
	d, err := amount.ParseAmount(s)
	if err != nil {
		return nil, &keyError{key: key, err: err}
	}
	return &d, nil
}

func parseDate(s string) (time.Time, error) {
	for _, c := range s {
		if c < '0' || c > '9' {
			return time.Time{}, fmt.Errorf("invalid date %q", s)
		}
	}
	return time.Parse(DateLayout, s)
}

// describe turns the first validator failure into a readable message
func describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	fe := errs[0]
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
	case "len":
		return fmt.Sprintf("String must contain exactly %s character(s)", fe.Param())
	case "number":
		return "Expected a number"
	case "amount":
		return "Invalid amount, expected up to 13 digits with optional 2 decimals"
	case "qrdate":
		return "Invalid date, expected YYYYMMDD"
	case "doctype":
		return enumMessage(model.DocumentTypeCodes())
	case "docstatus":
		return enumMessage(model.DocumentStatusCodes())
	case "region":
		return enumMessage(model.CountryRegionCodes())
	case "region_or_none":
		return enumMessage(append(model.CountryRegionCodes(), NoVATRegion))
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

func enumMessage(codes []string) string {
	return fmt.Sprintf("Invalid enum value. Expected %s", strings.Join(codes, " | "))
}

var defaultValidator = NewValidator()

// Parse extracts and validates a payload in one step
func Parse(raw string) (*Fields, error) {
	return defaultValidator.Validate(Extract(raw))
}

// IsValid reports whether a payload passes validation
func IsValid(raw string) bool {
	return defaultValidator.CheckValid(Extract(raw))
}
