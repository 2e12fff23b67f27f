package controllers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/saikrishna7004/campus-360-backend/models"
)

// RegisterValidators installs the custom binding tags used by request payloads.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("vendortype", func(fl validator.FieldLevel) bool {
		return models.VendorType(fl.Field().String()).Outlet()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("producttype", func(fl validator.FieldLevel) bool {
		return models.ProductType(fl.Field().String()).Valid()
	})
}
