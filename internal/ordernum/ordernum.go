// Package ordernum produces human-readable order numbers of the form ORD-XXXXXXXXXX.
package ordernum

import (
	"crypto/rand"
	"io"
	"strings"
)

const (
	DefaultPrefix = "ORD-"
	DefaultLength = 10

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// байты >= maxByte отбрасываем, иначе первые символы алфавита выпадали бы чаще
	maxByte = 256 - 256%len(alphabet)
)

type Generator interface {
	Next() (string, error)
}

// RandomGenerator draws every symbol from a CSPRNG. Uniqueness is still backed by the unique index
// on orders.order_number; callers retry on a collision.
type RandomGenerator struct {
	Prefix string
	Length int
	Source io.Reader
}

func New() *RandomGenerator {
	return &RandomGenerator{Prefix: DefaultPrefix, Length: DefaultLength, Source: rand.Reader}
}

func (g *RandomGenerator) Next() (string, error) {
	n := g.Length
	if n <= 0 {
		n = DefaultLength
	}
	src := g.Source
	if src == nil {
		src = rand.Reader
	}

	var b strings.Builder
	b.Grow(len(g.Prefix) + n)
	b.WriteString(g.Prefix)

	buf := make([]byte, n+n/2)
	for written := 0; written < n; {
		if _, err := io.ReadFull(src, buf); err != nil {
			return "", err
		}
		for _, c := range buf {
			if int(c) >= maxByte {
				continue
			}
			b.WriteByte(alphabet[int(c)%len(alphabet)])
			if written++; written == n {
				break
			}
		}
	}
	return b.String(), nil
}

// Valid reports whether s looks like a number produced with the default prefix and length.
func Valid(s string) bool {
	if !strings.HasPrefix(s, DefaultPrefix) {
		return false
	}
	body := strings.TrimPrefix(s, DefaultPrefix)
	if len(body) != DefaultLength {
		return false
	}
	for i := 0; i < len(body); i++ {
		if strings.IndexByte(alphabet, body[i]) < 0 {
			return false
		}
	}
	return true
}
