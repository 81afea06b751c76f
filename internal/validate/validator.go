// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"

	"holdings-scan/internal/document"
	"holdings-scan/internal/observability"
)

// isinFormat is the structural rule for a valid ISIN: two uppercase letters
// then ten uppercase alphanumerics. Validity is decided by this pattern
// alone; the check digit is verified separately and recorded as a check,
// because real statements contain typoed-but-recognizable identifiers that
// callers still want to see.
var isinFormat = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{10}$`)

// defaultCurrency is assumed when a holding carries no recognizable
// currency code.
const defaultCurrency = "USD"

// Validator normalizes and validates raw securities. Validation is a pure
// transform: the input record is never mutated, errors accumulate on the
// returned copy, and a malformed record is kept with IsValid=false rather
// than dropped.
type Validator struct {
	observer *observability.Recorder
}

// NewValidator creates a securities validator.
func NewValidator() *Validator {
	return &Validator{}
}

// SetObserver sets the diagnostics recorder.
func (v *Validator) SetObserver(observer *observability.Recorder) {
	v.observer = observer
}

// ValidateAll validates a batch. One record panicking during validation
// degrades that record to IsValid=false with an explanatory error; the
// rest of the batch is unaffected.
func (v *Validator) ValidateAll(raw []document.Security) []document.Security {
	finish := v.observer.StartTiming("validate", "validate_all", "")

	validated := make([]document.Security, 0, len(raw))
	validCount := 0
	for _, sec := range raw {
		out := v.validateSafe(sec)
		if out.IsValid {
			validCount++
		}
		validated = append(validated, out)
	}

	finish(true, map[string]any{
		"total": len(validated),
		"valid": validCount,
	})
	return validated
}

func (v *Validator) validateSafe(raw document.Security) (out document.Security) {
	defer func() {
		if r := recover(); r != nil {
			out = raw
			out.Errors = append(out.Errors, fmt.Sprintf("internal validation failure: %v", r))
			out.IsValid = false
		}
	}()
	return Validate(raw)
}

// Validate normalizes and validates one security. See the package doc for
// the field rules; in short: ISIN is pattern-checked (failure recorded, not
// fatal), numerics are coerced to unknown when non-finite, a missing value
// is recomputed from quantity times price, and the currency defaults to
// USD when absent or unrecognized.
func Validate(raw document.Security) document.Security {
	sec := raw
	sec.Errors = append([]string(nil), raw.Errors...)
	sec.Checks = map[string]bool{}

	sec.Name = strings.TrimSpace(sec.Name)
	if sec.Name == "" {
		sec.Errors = append(sec.Errors, "missing security name")
	}

	sec.ISIN = strings.ToUpper(strings.TrimSpace(sec.ISIN))
	if sec.ISIN != "" {
		if isinFormat.MatchString(sec.ISIN) {
			sec.Checks["isin_format"] = true
			sec.Checks["isin_checksum"] = checkISINDigit(sec.ISIN)
		} else {
			sec.Checks["isin_format"] = false
			sec.Errors = append(sec.Errors, fmt.Sprintf("malformed ISIN: %q", raw.ISIN))
		}
	}

	sec.Quantity = coerceNumeric(sec.Quantity)
	sec.Price = coerceNumeric(sec.Price)
	sec.Weight = coerceNumeric(sec.Weight)
	sec.Value = coerceNumeric(sec.Value)

	if sec.Value == nil && sec.Quantity != nil && sec.Price != nil {
		sec.Value = document.Float(*sec.Quantity * *sec.Price)
	}

	sec.Currency = normalizeCurrency(sec.Currency)

	sec.IsValid = len(sec.Errors) == 0
	return sec
}

// coerceNumeric nils out values that are not finite numbers.
func coerceNumeric(f *float64) *float64 {
	if f == nil {
		return nil
	}
	if math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	return f
}

// normalizeCurrency upper-cases the code and checks it against go-money's
// currency table. Absent or unrecognized codes default to USD.
func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return defaultCurrency
	}
	if money.GetCurrency(code) == nil {
		return defaultCurrency
	}
	return code
}

// checkISINDigit verifies the ISIN check digit: letters expand to two-digit
// numbers (A=10..Z=35) and the resulting digit string must pass the Luhn
// test.
func checkISINDigit(isin string) bool {
	var digits []int
	for _, r := range isin {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r >= 'A' && r <= 'Z':
			n := int(r-'A') + 10
			digits = append(digits, n/10, n%10)
		default:
			return false
		}
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}
