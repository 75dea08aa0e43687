// Package tokens generates URL-safe identifiers backed by the base62 codec.
package tokens

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/presbrey/base62kit/base62"
)

var (
	ErrWrongKind = errors.New("tokens: token has the wrong kind")
	ErrExhausted = errors.New("tokens: sequence exhausted")
)

// Generator is the main struct for configuring and generating tokens.
// A Generator is safe for concurrent use once configured.
type Generator struct {
	delimiter   string
	prefix      string
	suffix      string
	kind        kind
	randomBytes int
	counter     atomic.Uint64
	exhausted   atomic.Bool
}

type kind int

const (
	uuidV4Token kind = iota
	uuidV7Token
	randomToken
	sequenceToken
)

// New creates a new Generator producing UUIDv4 tokens.
func New() *Generator {
	return &Generator{
		delimiter:   "_",
		kind:        uuidV4Token,
		randomBytes: 16,
	}
}

// Delimiter sets the string placed between the prefix, token and suffix.
func (g *Generator) Delimiter(delimiter string) *Generator {
	g.delimiter = delimiter
	return g
}

// WithPrefix adds a prefix to generated tokens.
func (g *Generator) WithPrefix(prefix string) *Generator {
	g.prefix = prefix
	return g
}

// WithSuffix adds a suffix to generated tokens.
func (g *Generator) WithSuffix(suffix string) *Generator {
	g.suffix = suffix
	return g
}

// UUIDv4 sets the generator to encode random version 4 UUIDs.
func (g *Generator) UUIDv4() *Generator {
	g.kind = uuidV4Token
	return g
}

// UUIDv7 sets the generator to encode time-ordered version 7 UUIDs.
func (g *Generator) UUIDv7() *Generator {
	g.kind = uuidV7Token
	return g
}

// Random sets the generator to encode n random bytes.
func (g *Generator) Random(n int) *Generator {
	g.kind = randomToken
	g.randomBytes = n
	return g
}

// Sequence sets the generator to encode an increasing counter, the first
// token being start. Once math.MaxUint64 has been issued Generate returns
// ErrExhausted.
func (g *Generator) Sequence(start uint64) *Generator {
	g.kind = sequenceToken
	g.counter.Store(start)
	g.exhausted.Store(false)
	return g
}

// Generate returns a new token.
func (g *Generator) Generate() (string, error) {
	var body string

	switch g.kind {
	case uuidV4Token:
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("tokens: generating uuid: %w", err)
		}
		body = base62.EncodeBytes(id[:])
	case uuidV7Token:
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("tokens: generating uuid: %w", err)
		}
		body = base62.EncodeBytes(id[:])
	case randomToken:
		n := g.randomBytes
		if n <= 0 {
			n = 16
		}
		b := make([]byte, n)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("tokens: reading random bytes: %w", err)
		}
		body = base62.EncodeBytes(b)
	case sequenceToken:
		next, err := g.nextSequence()
		if err != nil {
			return "", err
		}
		body = base62.EncodeUint64(next)
	}

	return g.wrap(body), nil
}

// MustGenerate is like Generate but panics on error.
func (g *Generator) MustGenerate() string {
	token, err := g.Generate()
	if err != nil {
		panic(err)
	}
	return token
}

// ParseUUID recovers the UUID carried by a token from a UUIDv4 or UUIDv7 generator.
func (g *Generator) ParseUUID(token string) (uuid.UUID, error) {
	body, err := g.unwrap(token)
	if err != nil {
		return uuid.Nil, err
	}
	b, err := base62.DecodeBytes(body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("tokens: %w", err)
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrWrongKind, err)
	}
	return id, nil
}

// ParseBytes recovers the raw bytes carried by a UUID or random token.
func (g *Generator) ParseBytes(token string) ([]byte, error) {
	body, err := g.unwrap(token)
	if err != nil {
		return nil, err
	}
	b, err := base62.DecodeBytes(body)
	if err != nil {
		return nil, fmt.Errorf("tokens: %w", err)
	}
	return b, nil
}

// ParseSequence recovers the counter value carried by a sequence token.
func (g *Generator) ParseSequence(token string) (uint64, error) {
	body, err := g.unwrap(token)
	if err != nil {
		return 0, err
	}
	v, err := base62.DecodeUint64(body)
	if err != nil {
		return 0, fmt.Errorf("tokens: %w", err)
	}
	return v, nil
}

// nextSequence claims the next counter value without wrapping past math.MaxUint64.
func (g *Generator) nextSequence() (uint64, error) {
	for {
		if g.exhausted.Load() {
			return 0, ErrExhausted
		}
		next := g.counter.Load()
		if next == math.MaxUint64 {
			if g.exhausted.CompareAndSwap(false, true) {
				return next, nil
			}
			continue
		}
		if g.counter.CompareAndSwap(next, next+1) {
			return next, nil
		}
	}
}

func (g *Generator) wrap(body string) string {
	if g.prefix != "" {
		body = g.prefix + g.delimiter + body
	}
	if g.suffix != "" {
		body = body + g.delimiter + g.suffix
	}
	return body
}

func (g *Generator) unwrap(token string) (string, error) {
	if g.prefix != "" {
		p := g.prefix + g.delimiter
		if !strings.HasPrefix(token, p) {
			return "", fmt.Errorf("%w: missing prefix %q", ErrWrongKind, g.prefix)
		}
		token = token[len(p):]
	}
	if g.suffix != "" {
		s := g.delimiter + g.suffix
		if !strings.HasSuffix(token, s) {
			return "", fmt.Errorf("%w: missing suffix %q", ErrWrongKind, g.suffix)
		}
		token = token[:len(token)-len(s)]
	}
	return token, nil
}
