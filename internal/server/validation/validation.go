// Package validation holds the input rules applied to account data before it
// reaches the credential store: display names, email addresses and the
// password policy. Every failure is a *common.InputError carrying the rule
// that was violated.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

const (
	MsgNameEmpty        = "Name cannot be empty"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgPasswordShort    = "Password must be at least 6 characters long"
	MsgPasswordNoUpper  = "Password must contain at least one uppercase letter"
	MsgPasswordNoLower  = "Password must contain at least one lowercase letter"
	MsgPasswordNoNumber = "Password must contain at least one number"
)

// MinPasswordLength is the shortest accepted password, in runes.
const MinPasswordLength = 6

// emailPattern is deliberately loose: one '@', a '.' somewhere after it and
// no whitespace. It is not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`\p{Nd}`)
)

// passwordRules run in order; ozzo stops at the first failing rule.
var passwordRules = []validation.Rule{
	validation.Required.Error(MsgPasswordShort),
	validation.RuneLength(MinPasswordLength, 0).Error(MsgPasswordShort),
	validation.Match(upperPattern).Error(MsgPasswordNoUpper),
	validation.Match(lowerPattern).Error(MsgPasswordNoLower),
	validation.Match(digitPattern).Error(MsgPasswordNoNumber),
}

var emailRules = []validation.Rule{
	validation.Required.Error(MsgEmailInvalid),
	validation.Match(emailPattern).Error(MsgEmailInvalid),
}

// NormalizeEmail trims surrounding whitespace and lowercases raw.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(raw string) string {
	return strings.TrimSpace(raw)
}

// ValidateName rejects names that are empty after trimming.
func ValidateName(name string) error {
	return check(NormalizeName(name), validation.Required.Error(MsgNameEmpty))
}

// ValidateEmail checks an already normalized address against emailPattern.
func ValidateEmail(email string) error {
	return check(email, emailRules...)
}

// ValidatePassword applies the password policy. The password itself is never
// included in the returned error.
func ValidatePassword(password string) error {
	return check(password, passwordRules...)
}

func check(value string, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return common.NewInputError(err.Error())
	}
	return nil
}
