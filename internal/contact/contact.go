// Package contact validates and normalizes the contact methods an alert
// signup can carry: an email address, an Australian mobile number, or a Yo
// username.
package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/chybby/tutorifull/internal/model"
)

// Validation errors surfaced to the user by the alert submission flow.
var (
	ErrMissingContact = errors.New("no contact method provided")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidPhone   = errors.New("invalid australian phone number")
	ErrInvalidYoName  = errors.New("invalid yo username")
)

// NameChecker reports whether a Yo username exists. The Yo API client
// implements it; validation takes it as a parameter so the rules stay free
// of transport concerns.
type NameChecker interface {
	IsValidName(ctx context.Context, name string) (bool, error)
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// Australian mobiles: local 04xxxxxxxx or international 614xxxxxxxx,
	// with or without the leading +.
	phonePattern  = regexp.MustCompile(`^(04|\+?614)\d{8}$`)
	yoNamePattern = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// Submission is one contact method as submitted, before validation. Build it
// with FromRequest and turn it into a storable model.Contact with Validate.
type Submission struct {
	kind  model.ContactType
	value string
}

// FromRequest selects the contact method present on an alert submission.
// Field precedence mirrors the signup form: email wins over phonenumber,
// which wins over yoname. Returns ErrMissingContact when no field is set.
func FromRequest(req *model.SaveAlertsRequest) (Submission, error) {
	switch {
	case req.Email != nil:
		return Submission{kind: model.ContactTypeEmail, value: *req.Email}, nil
	case req.PhoneNumber != nil:
		return Submission{kind: model.ContactTypeSMS, value: *req.PhoneNumber}, nil
	case req.YoName != nil:
		return Submission{kind: model.ContactTypeYo, value: *req.YoName}, nil
	default:
		return Submission{}, ErrMissingContact
	}
}

// Validate normalizes the submitted value and checks it against its
// channel's rules. Yo usernames are additionally checked for existence
// through checker; a checker transport failure is returned wrapped, distinct
// from ErrInvalidYoName. The returned Contact holds the normalized value in
// the form it is stored and later delivered to.
func (s Submission) Validate(ctx context.Context, checker NameChecker) (model.Contact, error) {
	switch s.kind {
	case model.ContactTypeEmail:
		email := strings.TrimSpace(s.value)
		if !emailPattern.MatchString(email) {
			return model.Contact{}, ErrInvalidEmail
		}
		return model.Contact{Type: model.ContactTypeEmail, Value: email}, nil

	case model.ContactTypeSMS:
		phone := normalizePhone(s.value)
		if !phonePattern.MatchString(phone) {
			return model.Contact{}, ErrInvalidPhone
		}
		return model.Contact{Type: model.ContactTypeSMS, Value: phone}, nil

	case model.ContactTypeYo:
		name := strings.ToUpper(strings.TrimSpace(s.value))
		if !yoNamePattern.MatchString(name) {
			return model.Contact{}, ErrInvalidYoName
		}
		exists, err := checker.IsValidName(ctx, name)
		if err != nil {
			return model.Contact{}, fmt.Errorf("check yo name: %w", err)
		}
		if !exists {
			return model.Contact{}, ErrInvalidYoName
		}
		return model.Contact{Type: model.ContactTypeYo, Value: name}, nil

	default:
		return model.Contact{}, ErrMissingContact
	}
}

// CheckYoName reports whether raw is a well-formed, existing Yo username.
// Malformed names short-circuit to false without consulting the checker.
func CheckYoName(ctx context.Context, checker NameChecker, raw string) (bool, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if !yoNamePattern.MatchString(name) {
		return false, nil
	}
	return checker.IsValidName(ctx, name)
}

// normalizePhone strips every rune that is not a digit or a plus sign,
// accepting spaced and hyphenated input. No shape is canonicalized into
// another: 04..., 614... and +614... all store as given, digits intact.
func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
