package slug

import (
	"fmt"
	"regexp"
	"strings"

	"clubsite-api/internal/platform/apierr"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • deriving URL-safe slugs from display names
	  • allocating a unique slug within one entity namespace
	- No persistence here; callers pass in a namespace lookup.
*/

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespace = regexp.MustCompile(`\s+`)
	multiDash  = regexp.MustCompile(`-+`)
)

// maxAttempts caps the suffix probe loop so a misbehaving lookup cannot
// spin forever.
const maxAttempts = 1000

// Slugify derives a URL-safe base slug from free text.
// Example: "Hello World!" -> "hello-world"
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "&", " ")
	s = nonSlug.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Lookup resolves a candidate slug within one entity namespace. It returns
// the id of the row currently holding the slug, or found=false if free.
type Lookup func(slug string) (id uint, found bool, err error)

// GenerateUnique allocates a slug for name that no other row in the
// namespace holds. excludeID (0 = none) names the row being updated, so its
// own current slug does not count as a collision. Probes "base", "base-2",
// "base-3", ... and performs no writes.
func GenerateUnique(name string, excludeID uint, lookup Lookup) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", apierr.Validation("name %q does not contain any slug-safe characters", name)
	}

	candidate := base
	for counter := 2; counter < maxAttempts; counter++ {
		id, found, err := lookup(candidate)
		if err != nil {
			return "", err
		}
		if !found || (excludeID != 0 && id == excludeID) {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}

	return "", fmt.Errorf("could not allocate a unique slug for %q", name)
}
