package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"foodflow-frontend/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type loginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerForm struct {
	Username  string      `json:"username" validate:"required,min=3,max=30"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=8"`
	Role      domain.Role `json:"role" validate:"required,oneof=customer restaurant_owner"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

type checkoutForm struct {
	DeliveryAddress string `json:"delivery_address" validate:"required"`
}

type cartForm struct {
	MenuItem int    `json:"menu_item" validate:"required,gt=0"`
	Op       string `json:"op" validate:"required,oneof=add remove"`
}

type statusForm struct {
	Status domain.OrderStatus `json:"status" validate:"required,oneof=pending preparing out_for_delivery delivered cancelled"`
}

type restaurantForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phone_number"`
}

type menuItemForm struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	IsAvailable bool    `json:"is_available"`
}

// validateForm flattens validator errors into one inline message the page
// can show as a banner.
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}

	msgs := make([]string, 0, len(valErrs))
	for _, fe := range valErrs {
		msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, ", "))
}
