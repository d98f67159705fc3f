package providers

import (
	"errors"

	"github.com/gookit/validate"

	"twsave/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct-tag rules declared in structures.Config.
func (v *CnfValidator) Validate() error {
	vd := validate.Struct(v.conf)
	if !vd.Validate() {
		return errors.New(vd.Errors.One())
	}
	return nil
}
