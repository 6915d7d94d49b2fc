package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/mediagraph/tree"
)

func mustParse(t *testing.T, doc string) *tree.Node {
	t.Helper()
	n, err := tree.ParseString(doc)
	require.NoError(t, err)
	return n
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key      string
		wantPath []string
		wantAttr string
		wantOp   string
	}{
		{"viewCount", nil, "viewCount", "exact"},
		{"viewCount__gte", nil, "viewCount", "gte"},
		{"Genre__tag", []string{"Genre"}, "tag", "exact"},
		{"Media__Part__container", []string{"Media", "Part"}, "container", "exact"},
		{"Media__Part__container__in", []string{"Media", "Part"}, "container", "in"},
		{"etag", nil, "etag", "exact"},
		{"guid__id__regex", []string{"guid"}, "id", "regex"},
		// A suffix not naming a known operator is part of the path
		{"Genre__bogus", []string{"Genre"}, "bogus", "exact"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p := ParseKey(tt.key, nil)
			if tt.wantPath == nil {
				assert.Empty(t, p.Path)
			} else {
				assert.Equal(t, tt.wantPath, p.Path)
			}
			assert.Equal(t, tt.wantAttr, p.Attr)
			assert.Equal(t, tt.wantOp, p.Op)
		})
	}
}

func TestMatchExactOperators(t *testing.T) {
	node := mustParse(t, `<Video type="movie" title="Cars" viewCount="3" rating="7.5" live="1"/>`)

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"exact string", Filters{"title": "Cars"}, true},
		{"exact string miss", Filters{"title": "Planes"}, false},
		{"exact int coerces", Filters{"viewCount": 3}, true},
		{"exact int miss", Filters{"viewCount": 4}, false},
		{"exact float against decimal", Filters{"rating": 7.5}, true},
		{"int operand against decimal value", Filters{"rating": 7}, false},
		{"bool operand", Filters{"live": true}, true},
		{"bool operand miss", Filters{"live": false}, false},
		{"ne", Filters{"title__ne": "Planes"}, true},
		{"ne miss", Filters{"title__ne": "Cars"}, false},
		{"iexact", Filters{"title__iexact": "cars"}, true},
		{"contains", Filters{"title__contains": "ar"}, true},
		{"icontains both sides", Filters{"title__icontains": "CAR"}, true},
		{"startswith", Filters{"title__startswith": "Ca"}, true},
		{"istartswith", Filters{"title__istartswith": "cA"}, true},
		{"endswith", Filters{"title__endswith": "rs"}, true},
		{"iendswith", Filters{"title__iendswith": "RS"}, true},
		{"gt", Filters{"viewCount__gt": 2}, true},
		{"gt equal is false", Filters{"viewCount__gt": 3}, false},
		{"gte equal", Filters{"viewCount__gte": 3}, true},
		{"lt", Filters{"viewCount__lt": 4}, true},
		{"lte", Filters{"viewCount__lte": 3}, true},
		{"in", Filters{"title__in": []string{"Up", "Cars"}}, true},
		{"in miss", Filters{"title__in": []string{"Up", "Planes"}}, false},
		{"in ints by string form", Filters{"viewCount__in": []int{2, 3}}, true},
		{"regex", Filters{"title__regex": `^Ca.s$`}, true},
		{"iregex", Filters{"title__iregex": `^cars$`}, true},
		{"regex miss", Filters{"title__regex": `^Planes$`}, false},
		{"multiple keys AND", Filters{"title": "Cars", "viewCount": 3}, true},
		{"multiple keys AND miss", Filters{"title": "Cars", "viewCount": 9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(node, tt.filters))
		})
	}
}

func TestMatchMissingAttribute(t *testing.T) {
	// No genre attribute on the node at all
	node := mustParse(t, `<Video type="movie" title="Cars"/>`)

	// Missing attribute satisfies exact match against nil, 0, and ""
	assert.True(t, Match(node, Filters{"genre": nil}))
	assert.True(t, Match(node, Filters{"genre": 0}))
	assert.True(t, Match(node, Filters{"genre": ""}))
	// ...but not against a real value
	assert.False(t, Match(node, Filters{"genre": "x"}))

	// An empty-string attribute is present, so the special case no longer
	// applies to nil, while "" still matches exactly
	empty := mustParse(t, `<Video genre=""/>`)
	assert.True(t, Match(empty, Filters{"genre": ""}))
	assert.False(t, Match(empty, Filters{"genre": nil}))
}

func TestMatchExists(t *testing.T) {
	node := mustParse(t, `<Video title="Cars"/>`)

	assert.True(t, Match(node, Filters{"title__exists": true}))
	assert.False(t, Match(node, Filters{"title__exists": false}))
	assert.False(t, Match(node, Filters{"genre__exists": true}))
	assert.True(t, Match(node, Filters{"genre__exists": false}))
}

func TestMatchEtag(t *testing.T) {
	node := mustParse(t, `<Video title="Cars"/>`)

	assert.True(t, Match(node, Filters{"etag": "Video"}))
	assert.True(t, Match(node, Filters{"etag__iexact": "video"}))
	assert.False(t, Match(node, Filters{"etag": "Track"}))
}

func TestMatchChildPaths(t *testing.T) {
	node := mustParse(t, `<Video title="Cars">
	  <Genre tag="Animation"/>
	  <Genre tag="Comedy"/>
	  <Media videoCodec="h264">
	    <Part container="mp4"/>
	  </Media>
	  <Media videoCodec="h265">
	    <Part container="mkv"/>
	  </Media>
	</Video>`)

	// OR across multiple occurrences of the same predicate
	assert.True(t, Match(node, Filters{"Genre__tag": "Comedy"}))
	assert.True(t, Match(node, Filters{"Genre__tag": "Animation"}))
	assert.False(t, Match(node, Filters{"Genre__tag": "Drama"}))

	// Child tags match case-insensitively
	assert.True(t, Match(node, Filters{"genre__tag": "Comedy"}))

	// Nested paths
	assert.True(t, Match(node, Filters{"Media__Part__container": "mkv"}))
	assert.True(t, Match(node, Filters{"Media__Part__container__in": []string{"mp4"}}))
	assert.False(t, Match(node, Filters{"Media__Part__container": "avi"}))

	assert.True(t, Match(node, Filters{"Media__videoCodec__regex": `h26[45]`}))
}

func TestMatchIdempotent(t *testing.T) {
	// Filtering twice with the same key gives the same result as once
	nodes := []*tree.Node{
		mustParse(t, `<Video title="Cars" viewCount="0"/>`),
		mustParse(t, `<Video title="Up" viewCount="2"/>`),
		mustParse(t, `<Video title="Brave"/>`),
	}
	f := Filters{"viewCount": 0}

	var once []*tree.Node
	for _, n := range nodes {
		if Match(n, f) {
			once = append(once, n)
		}
	}
	var twice []*tree.Node
	for _, n := range once {
		if Match(n, f) {
			twice = append(twice, n)
		}
	}
	assert.Equal(t, once, twice)
	assert.Len(t, once, 2) // viewCount=0 and the missing-attr special case
}

func TestMatchUncoercibleValue(t *testing.T) {
	node := mustParse(t, `<Video viewCount="abc"/>`)

	// A value that cannot be coerced toward the operand never matches
	assert.False(t, Match(node, Filters{"viewCount": 3}))
	assert.False(t, Match(node, Filters{"viewCount__gte": 3}))
}

func TestValues(t *testing.T) {
	node := mustParse(t, `<Video title="Cars"><Genre tag="A"/><Genre tag="B"/><Genre/></Video>`)

	assert.Equal(t, []string{"Cars"}, Values(node, nil, "title"))
	assert.Equal(t, []string{"Video"}, Values(node, nil, "etag"))
	// Children lacking the attribute contribute nothing
	assert.Equal(t, []string{"A", "B"}, Values(node, []string{"Genre"}, "tag"))
	assert.Empty(t, Values(node, nil, "missing"))
}
