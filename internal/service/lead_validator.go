package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/helpston-festival/festival-api/internal/dto"
	"github.com/helpston-festival/festival-api/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Loose UK-style check, deliberately permissive.
	phonePattern = regexp.MustCompile(`^(\+44|0)[\d-]{9,13}$`)
)

const maxMessageLength = 1000

// ValidateLeadSubmission checks the raw form fields and returns either
// a normalized input record or a map of per-field error messages. All
// failing fields are reported together; invalid input is a normal
// result, not an error.
func ValidateLeadSubmission(req dto.SubmitLeadRequest) (models.CreateLeadInput, dto.FieldErrors) {
	errs := dto.FieldErrors{}

	// Lengths are counted in characters, not bytes, so multibyte
	// names are measured the same way the form shows them.
	companyName := strings.TrimSpace(req.CompanyName)
	if utf8.RuneCountInString(companyName) < 2 {
		errs["companyName"] = "Company name is required (minimum 2 characters)"
	}

	contactName := strings.TrimSpace(req.ContactName)
	if utf8.RuneCountInString(contactName) < 2 {
		errs["contactName"] = "Contact name is required (minimum 2 characters)"
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs["email"] = "Email address is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != "" && !phonePattern.MatchString(stripWhitespace(phone)) {
		errs["phone"] = "Please enter a valid UK phone number"
	}

	if strings.TrimSpace(req.Package) == "" {
		errs["package"] = "Please select a sponsorship package"
	}

	if utf8.RuneCountInString(req.Message) > maxMessageLength {
		errs["message"] = "Message must be less than 1000 characters"
	}

	if !req.Consent {
		errs["general"] = "You must agree to be contacted about sponsorship"
	}

	if len(errs) > 0 {
		return models.CreateLeadInput{}, errs
	}

	return models.CreateLeadInput{
		CompanyName:       companyName,
		ContactName:       contactName,
		Email:             strings.ToLower(email),
		Phone:             phone,
		InterestedPackage: req.Package,
		Message:           strings.TrimSpace(req.Message),
		ReferralSource:    strings.TrimSpace(req.ReferralSource),
	}, nil
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
