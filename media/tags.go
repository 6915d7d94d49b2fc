package media

import (
	"context"

	"github.com/teranos/mediagraph/filter"
	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

// TagEntry is the shared shape of tag elements attached to library items:
// genres, directors, writers, cast, countries, collections, labels, moods,
// styles, and guids all carry the same attribute set.
type TagEntry struct {
	object.Object

	// ID is the server-assigned tag id.
	ID *int
	// Tag is the display value.
	Tag *string
	// Filter is the library filter expression selecting items with this
	// tag.
	Filter *string
	// TagKey is the cloud metadata key, present on cast and guid tags.
	TagKey *string
	// Role is the character name, present on cast tags.
	Role *string
	// Thumb is the tag artwork, present on cast tags.
	Thumb *string
	// Count is how many library items carry the tag, present in listing
	// contexts only.
	Count *int
}

// newTagEntry builds a tag of any element name. Every tag variant shares
// TagEntry; the element name alone distinguishes them in the registry.
func newTagEntry(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	t := &TagEntry{}
	object.Init(t, srv, node, initPath, parent)
	return t
}

// LoadData populates the tag's fields from the backing node.
func (t *TagEntry) LoadData(node *tree.Node) {
	t.LoadCommon(node)
	t.SetInt(&t.ID, node, "id")
	t.SetString(&t.Tag, node, "tag")
	t.SetString(&t.Filter, node, "filter")
	t.SetString(&t.TagKey, node, "tagKey")
	t.SetString(&t.Role, node, "role")
	t.SetString(&t.Thumb, node, "thumb")
	t.SetInt(&t.Count, node, "count")
}

// Items fetches the library items carrying this tag. The tag must come
// from a library context where the server provided a key.
func (t *TagEntry) Items(ctx context.Context) (*object.Container, error) {
	return t.FetchItems(ctx, t.Key, nil)
}

// cachedTags collects the direct tag children with the given element name,
// memoized on the owning object against its backing node.
func cachedTags(o *object.Object, cacheKey, tag string) []*TagEntry {
	val := o.Cached(cacheKey, func() any {
		var out []*TagEntry
		items := o.FindItems(o.Data(), &object.FindOptions{
			Filters: filter.Filters{"etag": tag},
		})
		for _, item := range items.Items() {
			if t, ok := item.(*TagEntry); ok {
				out = append(out, t)
			}
		}
		return out
	})
	out, _ := val.([]*TagEntry)
	return out
}
