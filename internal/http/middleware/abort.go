package middleware

import "github.com/gin-gonic/gin"

// abort stops the chain with the API failure envelope.
func abort(c *gin.Context, status int, code, message string, details any) {
	body := gin.H{
		"success":    false,
		"message":    message,
		"code":       code,
		"request_id": GetRequestID(c),
	}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
