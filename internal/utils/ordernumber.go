package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	OrderNumberPrefix = "ORD"
	orderSuffixLen    = 5
	base36Alphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateOrderNumber returns ORD-<base36 unix millis>-<5 random base36>,
// all upper case.
func GenerateOrderNumber() string {
	return orderNumberAt(time.Now())
}

func orderNumberAt(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	var suffix strings.Builder
	alphabetLen := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < orderSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			// fallback: time-based entropy
			n = big.NewInt((now.UnixNano() >> (i * 5)) % int64(len(base36Alphabet)))
		}
		suffix.WriteByte(base36Alphabet[n.Int64()])
	}

	return OrderNumberPrefix + "-" + ts + "-" + suffix.String()
}
