// Package dto provides the HTTP layer data transfer objects.
package dto

import (
	"github.com/gin-gonic/gin"

	apperrors "plotweaver/pkg/errors"
)

// Response is the success envelope.
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorResponse is the error envelope. Code carries the application
// error code, not the HTTP status.
type ErrorResponse struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Detail  string              `json:"detail,omitempty"`
	TraceID string              `json:"trace_id,omitempty"`
}

// MessageResponse carries a bare result message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes a 200 envelope.
func Success[T any](c *gin.Context, data T) {
	c.JSON(200, Response[T]{
		Code:    0,
		Message: "ok",
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// Created writes a 201 envelope.
func Created[T any](c *gin.Context, data T) {
	c.JSON(201, Response[T]{
		Code:    0,
		Message: "created",
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// Error writes an error envelope with the given HTTP status.
func Error(c *gin.Context, httpStatus int, code apperrors.ErrorCode, message, detail string) {
	c.JSON(httpStatus, ErrorResponse{
		Code:    code,
		Message: message,
		Detail:  detail,
		TraceID: c.GetString("trace_id"),
	})
}

// BadRequest writes a 400 for malformed request bodies.
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, apperrors.CodeInvalidParam, message, "")
}
