// Package id generates opaque correlation identifiers.
package id

import (
	"crypto/rand"
	"io"
	mrand "math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Generator produces correlation identifiers.
// Preferred form is a random (version 4) UUID; when the entropy source
// fails it degrades to "<unix-ms>_<hex>" so callers always get an id.
type Generator struct {
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator creates a generator reading UUID entropy from r.
// A nil reader means crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{entropy: r, now: time.Now}
}

// New returns a fresh identifier.
func (g *Generator) New() string {
	u, err := uuid.NewRandomFromReader(g.entropy)
	if err == nil {
		return u.String()
	}
	return g.fallback()
}

func (g *Generator) fallback() string {
	return strconv.FormatInt(g.now().UnixMilli(), 10) + "_" + strconv.FormatUint(mrand.Uint64(), 16)
}

var defaultGenerator = NewGenerator(nil)

// New returns a fresh identifier from the default generator.
func New() string {
	return defaultGenerator.New()
}
