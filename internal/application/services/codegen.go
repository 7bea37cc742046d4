package services

import (
	"crypto/rand"
	"math/big"

	"quickdrop-api/config"
)

const (
	codeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeGenerator produces short access codes for shares and longer opaque
// tokens for blob names. Generation is stateless; code uniqueness is
// enforced by the record store, with the caller retrying on collision.
type CodeGenerator struct {
	codeLen  int
	tokenLen int
}

func NewCodeGenerator(cfg config.Share) *CodeGenerator {
	return &CodeGenerator{
		codeLen:  cfg.CodeLength,
		tokenLen: cfg.TokenLength,
	}
}

func (g *CodeGenerator) NewCode() (string, error) {
	return randomString(codeAlphabet, g.codeLen)
}

func (g *CodeGenerator) NewBlobToken() (string, error) {
	return randomString(tokenAlphabet, g.tokenLen)
}

func randomString(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
