package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kyukyubank/banking-service/internal/utils/accountnumber"
)

// RegisterCustomValidators wires domain validation tags into gin's binding
// validator. The "accountnumber" tag runs the offline check-digit validation,
// so malformed receiver numbers are rejected at bind time.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountnumber", func(fl validator.FieldLevel) bool {
			return accountnumber.Validate(fl.Field().String())
		})
	}
}
