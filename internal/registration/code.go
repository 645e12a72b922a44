package registration

import (
	"math/rand"
	"strings"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 5
)

// GenerateCode returns a photo code such as WS-I-7QK2D. Codes are not checked
// for uniqueness; two registrations may receive the same code.
func GenerateCode(c Category) string {
	return generateCode(c, rand.Intn)
}

func generateCode(c Category, intn func(n int) int) string {
	var b strings.Builder
	b.Grow(len("WS-X-") + codeLength)
	b.WriteString(c.codePrefix())
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[intn(len(codeAlphabet))])
	}
	return b.String()
}
