package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/panyam/ramtool/core"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxIdLength = 64

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	output, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return output
}

// NormalizeID turns a user supplied id or name into a safe storage key:
// accents stripped, lower case, runs of anything outside [a-z0-9_] folded
// into a single '-'.  "Pumpe Süd / 2" becomes "pumpe-sud-2".
func NormalizeID(raw string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(removeAccents(strings.TrimSpace(raw))) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxIdLength {
		out = strings.TrimRight(out[:maxIdLength], "-")
	}
	return out
}

// ValidateID rejects ids that NormalizeID would change.
func ValidateID(id string) error {
	if id == "" || NormalizeID(id) != id {
		return core.NewRamErrorf("Invalid scenario id '%s'.", id)
	}
	return nil
}

// IDGen hands out ids that are not taken yet.  Without Exists the ids
// from NextIDFunc are assumed to be collision free.
type IDGen struct {
	MaxRetries int
	Exists     func(ctx context.Context, id string) (bool, error)
	NextIDFunc func() string
}

func (g *IDGen) NextID(ctx context.Context) (string, error) {
	id := g.NextIDFunc()
	if g.Exists == nil {
		return id, nil
	}
	for attempt := 1; ; attempt++ {
		taken, err := g.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
		if g.MaxRetries > 0 && attempt >= g.MaxRetries {
			return "", fmt.Errorf("no free id after %d attempts", attempt)
		}
		id = g.NextIDFunc()
	}
}

// SimpleIDGen produces short random ids.  It is safe for concurrent use.
type SimpleIDGen struct {
	Letters    []rune
	MaxDigits  int
	RandSource *rand.Rand

	mu sync.Mutex
}

func (s *SimpleIDGen) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Letters) == 0 {
		s.Letters = []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	}
	if s.MaxDigits <= 0 {
		s.MaxDigits = 8
	}
	if s.RandSource == nil {
		s.RandSource = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := make([]rune, s.MaxDigits)
	for i := range b {
		b[i] = s.Letters[s.RandSource.Intn(len(s.Letters))]
	}
	return string(b)
}
