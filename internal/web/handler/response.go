package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Response is the JSON envelope every API endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a 200 envelope with the given message and payload.
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{Success: true, Message: message, Data: data})
}

// Created writes a 201 envelope with the given message and payload.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Message: message, Data: data})
}

// Fail writes an error envelope with the given status and message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// ErrorHandler maps errors escaping a handler chain to the JSON envelope so
// no route ever falls back to a plain-text response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return Fail(c, code, message)
}
