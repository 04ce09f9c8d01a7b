package internal

import "strings"

// videoIDMarkers are checked in order; the first one found wins
var videoIDMarkers = []string{"watch?v=", "youtu.be/"}

// ExtractVideoID normalizes a watch-page URL, a short link or a bare ID to a
// video ID. Anything after the first '&', '?' or '#' following the marker is
// dropped so timestamps and share tokens don't leak into the ID. Input without
// a marker is returned as is; the ID format is not validated.
func ExtractVideoID(ref string) string {
	ref = strings.TrimSpace(ref)
	for _, marker := range videoIDMarkers {
		if _, after, found := strings.Cut(ref, marker); found {
			if i := strings.IndexAny(after, "&?#"); i >= 0 {
				after = after[:i]
			}
			return after
		}
	}
	return ref
}

// WatchURL returns the canonical watch-page URL for a reference
func WatchURL(ref string) string {
	return "https://www.youtube.com/watch?v=" + ExtractVideoID(ref)
}
