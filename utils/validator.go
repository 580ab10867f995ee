package utils

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ValidationService struct {
	validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func NewValidationService() *ValidationService {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("service_type", validateServiceType)
	v.RegisterValidation("order_status", validateOrderStatus)
	v.RegisterValidation("subscription_plan", validateSubscriptionPlan)

	return &ValidationService{
		validator: v,
	}
}

func (vs *ValidationService) ValidateStruct(s interface{}) []ValidationError {
	var validationErrors []ValidationError

	err := vs.validator.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: vs.getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func (vs *ValidationService) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "phone":
		return "Invalid phone number format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", fe.Field(), fe.Param())
	case "service_type":
		return "Invalid service type"
	case "order_status":
		return "Invalid order status"
	case "subscription_plan":
		return "Invalid subscription plan"
	case "latitude":
		return "Invalid latitude value"
	case "longitude":
		return "Invalid longitude value"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

func validatePhone(fl validator.FieldLevel) bool {
	cleaned := regexp.MustCompile(`[\s\-()]`).ReplaceAllString(fl.Field().String(), "")
	return phoneRegex.MatchString(cleaned)
}

func validateServiceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "bodyguard", "driver", "concierge", "sos":
		return true
	}
	return false
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "confirmed", "in_progress", "completed", "cancelled":
		return true
	}
	return false
}

func validateSubscriptionPlan(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "basic", "premium", "vip":
		return true
	}
	return false
}
