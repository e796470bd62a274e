package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/suinsapi/domain/suins"
)

var suiAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// IsValidAddress returns is a sui address valid or not
func IsValidAddress(address string) bool {
	return suiAddressPattern.MatchString(address)
}

// NewCustomValidator registers the `suiaddress` and `suinsname` tags on v.
func NewCustomValidator(v *validator.Validate) echo.Validator {
	_ = v.RegisterValidation("suiaddress", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("suinsname", func(fl validator.FieldLevel) bool {
		return suins.IsSuiNSName(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
