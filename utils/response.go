package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   gin.H{"code": errCode, "message": message},
	})
}

// JSONFieldErrors reports per-field validation problems so the frontend
// can attach each message to its input.
func JSONFieldErrors(c *gin.Context, code int, fields interface{}) {
	c.JSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "error.validation",
			"message": "request failed validation",
			"fields":  fields,
		},
	})
}
