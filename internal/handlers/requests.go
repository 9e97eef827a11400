package handlers

import "github.com/go-playground/validator/v10"

// CustomValidator wraps the go-playground/validator library to implement
// Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// SendMessageRequest is the body of the send endpoint. At least one of
// text and image must be present; the receiver comes from the URL and the
// sender from the session.
type SendMessageRequest struct {
	Text  string `json:"text" validate:"required_without=Image"`
	Image string `json:"image" validate:"required_without=Text"`
}
