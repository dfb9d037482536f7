// Package random generates secrets such as the fallback session key.
package random

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Seq returns n characters drawn uniformly from [0-9a-zA-Z].
func Seq(n int) string {
	if n <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(alphanumeric)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		buf[i] = alphanumeric[idx.Int64()]
	}
	return string(buf)
}
