package atproto

import (
	"strings"

	appbsky "github.com/bluesky-social/indigo/api/bsky"
)

// HashtagFacets annotates verbatim hashtag occurrences in text with richtext
// tag facets. Facet ranges are UTF-8 byte offsets, which is what the lexicon
// expects regardless of how post lengths are counted elsewhere. Only the first
// occurrence of each hashtag is annotated; hashtags that do not appear in the
// text yield no facet.
func HashtagFacets(text string, hashtags []string) []*appbsky.RichtextFacet {
	var facets []*appbsky.RichtextFacet

	for _, tag := range hashtags {
		if tag == "" || tag == "#" {
			continue
		}
		start := strings.Index(text, tag)
		if start < 0 {
			continue
		}
		end := start + len(tag)

		facets = append(facets, &appbsky.RichtextFacet{
			Index: &appbsky.RichtextFacet_ByteSlice{
				ByteStart: int64(start),
				ByteEnd:   int64(end),
			},
			Features: []*appbsky.RichtextFacet_Features_Elem{
				{
					RichtextFacet_Tag: &appbsky.RichtextFacet_Tag{
						Tag: strings.TrimPrefix(tag, "#"),
					},
				},
			},
		})
	}
	return facets
}
