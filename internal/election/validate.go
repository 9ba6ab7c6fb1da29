package election

import (
	"unicode"

	"github.com/asaskevich/govalidator"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
)

const minVotingAge = 18

// validateRegistration enforces the registration rules. Messages are the
// user-visible contract and must stay word for word.
func validateRegistration(reg domain.Registration) *domain.Error {
	if reg.Age < minVotingAge {
		return domain.NewError(domain.CodeValidation, "You must be at least 18 years old to register.")
	}
	if !validPassword(reg.Password) {
		return domain.NewError(domain.CodeValidation, "Password must be at least 8 characters long and contain uppercase, lowercase, and numbers.")
	}
	if reg.Password != reg.ConfirmPassword {
		return domain.NewError(domain.CodeValidation, "Passwords do not match.")
	}
	if len(reg.AadhaarNumber) != 12 || !govalidator.IsNumeric(reg.AadhaarNumber) {
		return domain.NewError(domain.CodeValidation, "Aadhaar number must be 12 digits.")
	}
	if !govalidator.IsEmail(reg.Email) {
		return domain.NewError(domain.CodeValidation, "Invalid email address.")
	}
	return nil
}

func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
