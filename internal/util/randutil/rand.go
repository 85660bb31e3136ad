package randutil

import (
	"crypto/rand"
	"math/big"

	"github.com/sirupsen/logrus"
)

// Alphanum is the character set of paste.rs identifiers.
const Alphanum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// RandString generates a cryptographically random string of length n
// using an unbiased selection from Alphanum.
func RandString(n int) string {
	result := make([]byte, n)
	max := big.NewInt(int64(len(Alphanum)))

	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			logrus.WithError(err).Error("crypto/rand failed")
			result[i] = Alphanum[0]
			continue
		}
		result[i] = Alphanum[num.Int64()]
	}
	return string(result)
}
