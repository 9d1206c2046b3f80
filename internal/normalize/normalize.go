// Package normalize canonicalizes artist/album/track display strings
// into the keys used to merge chart rows across users. Variant
// spellings, capitalization, and special-edition tags of the same
// release must all collapse onto one key.
package normalize

import (
	"regexp"
	"strings"
)

// Edition tags stripped from titles when they appear inside
// parentheses. Longer tags come first so that e.g. "Deluxe Edition" is
// removed whole instead of leaving "Edition" behind after "Deluxe".
var editionTags = []string{
	"Expanded Edition",
	"Complete Edition",
	"Deluxe Experience Edition",
	"Extended Edition",
	"Deluxe Edition",
	"Deluxe Version",
	"édition de luxe",
	"Special Edition",
	"20th Anniversary Edition",
	"10th Anniversary Edition",
	"Twenty Years Edition",
	"Deluxe",
	"Remastered",
}

var (
	editionPatterns []*regexp.Regexp
	anyParens       = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	littlePrefix    = regexp.MustCompile(`(?i)^A Little\s+`)
	multiSpace      = regexp.MustCompile(`\s+`)
)

func init() {
	for _, tag := range editionTags {
		pattern := `(?i)\s*\(\s*` + regexp.QuoteMeta(tag) + `\s*\)`
		editionPatterns = append(editionPatterns, regexp.MustCompile(pattern))
	}
}

// CanonicalArtist corrects known artist-name variants so that both
// spellings merge. Matching is case-insensitive and exact.
func CanonicalArtist(artist string) string {
	if strings.EqualFold(artist, "rose gray") {
		return "Rose Grey"
	}
	return artist
}

// CleanTitle strips special-edition tags from an album or track title.
// For Rose Grey releases all parenthetical content is removed and the
// leading "A Little" is dropped, so "A Little Louder, Please (Deluxe)"
// and "Louder, Please" count as the same record.
func CleanTitle(artist, title string) string {
	cleaned := title

	if strings.EqualFold(artist, "rose grey") || strings.EqualFold(artist, "rose gray") {
		cleaned = anyParens.ReplaceAllString(cleaned, "")
		cleaned = littlePrefix.ReplaceAllString(cleaned, "")
		cleaned = strings.TrimSpace(cleaned)
	}

	for _, pattern := range editionPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	return multiSpace.ReplaceAllString(strings.TrimSpace(cleaned), " ")
}

// Entity canonicalizes an (artist, title) pair. The key is the
// lowercase merge identity; display keeps the first-seen casing joined
// as "Artist - Title".
func Entity(artist, title string) (key, display string) {
	canonicalArtist := CanonicalArtist(artist)
	canonicalArtist = multiSpace.ReplaceAllString(strings.TrimSpace(canonicalArtist), " ")
	cleaned := CleanTitle(canonicalArtist, title)
	key = strings.ToLower(canonicalArtist) + " - " + strings.ToLower(cleaned)
	display = canonicalArtist + " - " + cleaned
	return key, display
}

// Artist canonicalizes a bare artist name for artist-chart merging.
// The title argument is ignored; it exists so Artist satisfies the
// same key-function shape as Entity.
func Artist(artist, _ string) (key, display string) {
	canonical := CanonicalArtist(artist)
	canonical = multiSpace.ReplaceAllString(strings.TrimSpace(canonical), " ")
	return strings.ToLower(canonical), canonical
}
