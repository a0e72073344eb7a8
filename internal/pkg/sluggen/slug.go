// Package sluggen builds the unique, URL-safe identifiers used for
// courses and their content items.
package sluggen

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// SuffixSize is the length of the random suffix appended to every slug.
const SuffixSize = 6

const suffixChars = "abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var slugReplacer = strings.NewReplacer(
	" ", "-",
	"_", "-",
	"/", "-",
	`\`, "-",
	"@", "-",
)

// Slugify replaces separator characters with hyphens. It deliberately
// stops there: no lowercasing, no Unicode folding.
func Slugify(value string) string {
	return slugReplacer.Replace(value)
}

// RandomString generates a random alphanumeric string of the given size.
func RandomString(size int) string {
	var b strings.Builder
	b.Grow(size)
	max := big.NewInt(int64(len(suffixChars)))
	for i := 0; i < size; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; there is no sensible recovery.
			panic(err)
		}
		b.WriteByte(suffixChars[n.Int64()])
	}
	return b.String()
}

// Unique returns a slug derived from title with a random suffix, so
// identical titles still produce distinct slugs.
func Unique(title string) string {
	return Slugify(title) + "-" + RandomString(SuffixSize)
}
