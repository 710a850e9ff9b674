// Package render holds shared helpers for the server-rendered HTML views.
package render

import "github.com/gin-gonic/gin"

// Error renders the error view with the given HTTP status. Store-layer
// failures are always surfaced this way instead of crashing the request.
func Error(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Status":  status,
		"Message": message,
	})
}
