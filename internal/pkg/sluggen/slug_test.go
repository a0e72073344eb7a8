package sluggen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "Learn-Go-in-30-Days", Slugify("Learn Go in 30 Days"))
	assert.Equal(t, "a-b-c-d-e", Slugify(`a_b/c\d@e`))
	assert.Equal(t, "unchanged", Slugify("unchanged"))
}

func TestRandomString(t *testing.T) {
	value := RandomString(SuffixSize)
	assert.Len(t, value, SuffixSize)
	for _, r := range value {
		assert.Contains(t, suffixChars, string(r))
	}
}

func TestUnique(t *testing.T) {
	slug := Unique("Learn Go")
	assert.True(t, strings.HasPrefix(slug, "Learn-Go-"))
	assert.Len(t, slug, len("Learn-Go-")+SuffixSize)

	// Identical titles must still diverge
	other := Unique("Learn Go")
	assert.NotEqual(t, slug, other)
}
