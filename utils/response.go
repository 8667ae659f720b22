// utils/response.go
package utils

import (
	"crypto/rand"
	"log"
	"math/big"

	"github.com/gin-gonic/gin"
)

// RespondWithError logs and returns a JSON error envelope
func RespondWithError(c *gin.Context, code int, message string) {
	if code >= 500 {
		log.Printf("[ERROR] %s %s: %s", c.Request.Method, c.Request.URL.Path, message)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

const randomChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a random uppercase alphanumeric token
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomChars))))
		if err != nil {
			panic("failed to generate random string")
		}
		b[i] = randomChars[n.Int64()]
	}
	return string(b)
}
