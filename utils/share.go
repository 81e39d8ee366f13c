package utils

import (
	"crypto/rand"
	"math/big"
)

// PasswordLength is the length of generated sharing link passwords.
const PasswordLength = 16

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenPassword generates an alphanumeric sharing link password.
func GenPassword() string {
	return genCode(PasswordLength, passwordChars)
}

func genCode(length int, chars string) string {
	max := big.NewInt(int64(len(chars)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("utils: crypto/rand unavailable: " + err.Error())
		}
		code[i] = chars[n.Int64()]
	}
	return string(code)
}
