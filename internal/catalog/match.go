package catalog

import (
	"strings"

	"github.com/zmb3/spotify/v2"
)

// Album candidates earn 2 points when the primary artist
// substring-matches the queried artist (either direction) and 2 more
// when the title matches. DefaultMinMatchScore keeps a candidate only
// if at least one of the two matched.
const DefaultMinMatchScore = 2

// Artist candidates score higher for exact name matches so that
// "Muse" does not lose to "Museum of Love".
const (
	artistExactScore   = 10
	artistPartialScore = 5
)

func substringMatch(a, b string) bool {
	return a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a))
}

// bestAlbumMatch picks the best-scoring candidate for the queried
// artist and album. ok is false when no candidate reaches minScore.
func bestAlbumMatch(candidates []spotify.SimpleAlbum, artist, album string, minScore int) (spotify.SimpleAlbum, bool) {
	wantArtist := strings.ToLower(strings.TrimSpace(artist))
	wantAlbum := strings.ToLower(strings.TrimSpace(album))

	var best spotify.SimpleAlbum
	bestScore := 0
	for _, candidate := range candidates {
		candidateArtist := ""
		if len(candidate.Artists) > 0 {
			candidateArtist = strings.ToLower(candidate.Artists[0].Name)
		}
		candidateAlbum := strings.ToLower(candidate.Name)

		score := 0
		if substringMatch(candidateArtist, wantArtist) {
			score += 2
		}
		if substringMatch(candidateAlbum, wantAlbum) {
			score += 2
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore < minScore {
		return spotify.SimpleAlbum{}, false
	}
	return best, true
}

// bestArtistMatch picks the best-scoring candidate for the queried
// artist name. ok is false when nothing matches at all.
func bestArtistMatch(candidates []spotify.FullArtist, artist string) (spotify.FullArtist, bool) {
	want := strings.ToLower(strings.TrimSpace(artist))

	var best spotify.FullArtist
	bestScore := 0
	for _, candidate := range candidates {
		name := strings.ToLower(candidate.Name)

		score := 0
		switch {
		case name == want:
			score = artistExactScore
		case substringMatch(name, want):
			score = artistPartialScore
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore == 0 {
		return spotify.FullArtist{}, false
	}
	return best, true
}
