package siteutil

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email looks like local@domain.tld. It is a
// shape check only.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Obfuscator encodes text as HTML character references, picking decimal or
// hexadecimal form per character so the output differs between renders.
type Obfuscator struct {
	rnd *rand.Rand
}

// NewObfuscator returns an Obfuscator drawing from rnd. A nil rnd uses the
// global source.
func NewObfuscator(rnd *rand.Rand) *Obfuscator {
	return &Obfuscator{rnd: rnd}
}

// Encode converts every rune of text to &#<dec>; or &#x<hex>;.
func (o *Obfuscator) Encode(text string) string {
	var b strings.Builder
	for _, r := range text {
		if o.coin() {
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
		} else {
			b.WriteString("&#x")
			b.WriteString(strconv.FormatInt(int64(r), 16))
		}
		b.WriteByte(';')
	}
	return b.String()
}

func (o *Obfuscator) coin() bool {
	if o.rnd == nil {
		return rand.IntN(2) == 1
	}
	return o.rnd.IntN(2) == 1
}

// EncodeToEntities encodes text with the global random source.
func EncodeToEntities(text string) string {
	return NewObfuscator(nil).Encode(text)
}

// ObfuscatedEmail returns email as HTML character references for display.
func ObfuscatedEmail(email string) string {
	return EncodeToEntities(email)
}
