package utils

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"
)

// TokenPrefix namespaces every issued link token.
const TokenPrefix = "zrch_"

// GenerateToken creates a unique, URL-safe link token for a tracked
// recipient.
func GenerateToken() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		log.Printf("ERROR: Failed to generate random bytes for link token: %v", err)
		return TokenPrefix + time.Now().Format("20060102150405")
	}
	return TokenPrefix + hex.EncodeToString(b)
}

// MaskVisitor obfuscates a visitor token for dashboard display.
func MaskVisitor(token string) string {
	suffix := token
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "visitor_" + suffix + "@***.com"
}
