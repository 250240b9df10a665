package lifecycle

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const (
	codeMin   = 100000
	codeRange = 900000
)

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// CodeGenerator returns a fresh six digit session code
type CodeGenerator func() (string, error)

// RandomCode draws a session code from a cryptographic source
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

func wellFormedCode(code string) bool {
	return codePattern.MatchString(code)
}
