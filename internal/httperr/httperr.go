package httperr

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Respond classifies err and writes it. Every remote failure ends here as a
// blocking notification for the client; nothing is retried.
func Respond(c *gin.Context, err error) {
	cl := Classify(err)
	if cl.Status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(cl.Status, HTTPError{Code: cl.Code, Message: cl.Message})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, HTTPError{Code: code, Message: message})
}

func Forbidden(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, HTTPError{Code: code, Message: message})
}
