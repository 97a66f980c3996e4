package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform JSON wrapper every endpoint replies with.
type Envelope struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Envelope {
	return Envelope{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Envelope {
	return Envelope{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ErrorHandlerMiddleware recovers panics and maps uncaught fiber errors
// into the envelope so handlers never leak raw stack traces.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
