package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/arfandy-is/calendar-api/pkg/errors"
)

// The calendar frontend consumes bare payloads rather than an envelope:
// successes are the value itself, failures are {"error": "..."} and
// confirmations are {"message": "..."}.

// JSON writes the payload as-is with the given status.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends a confirmation body such as a delete acknowledgement.
func Message(c *gin.Context, status int, msg string) {
	JSON(c, status, gin.H{"message": msg})
}

// Error converts the error to the {"error": ...} wire shape using its
// embedded HTTP status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
