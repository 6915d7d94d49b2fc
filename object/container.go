package object

import (
	"github.com/teranos/mediagraph/tree"
)

// EnvelopeTag is the element tag of a paginated response envelope.
const EnvelopeTag = "MediaContainer"

// Container is an ordered sequence of materialized items plus the
// collection metadata the response envelope carried. Merging accumulates
// items and metadata across pages.
type Container struct {
	Object

	items []Item

	// Pagination metadata. Nil means the envelope did not report the
	// value.
	Offset    *int
	Size      *int
	TotalSize *int

	// Provenance, inherited from the envelope; filled only when
	// previously unset during merges. LibrarySectionID shadows the
	// stamped per-item field on Object so unset stays distinguishable.
	AllowSync           *int
	AugmentationKey     *string
	Identifier          *string
	LibrarySectionID    *int
	LibrarySectionTitle *string
	LibrarySectionUUID  *string
	MediaTagPrefix      *string
	MediaTagVersion     *string
}

// NewContainer builds a container seeded from a response envelope node.
func NewContainer(srv Server, data *tree.Node, initPath string) *Container {
	c := &Container{}
	Init(c, srv, data, initPath, nil)
	return c
}

// newEmptyContainer builds a container with no metadata, used to
// accumulate pages.
func newEmptyContainer(srv Server, initPath string) *Container {
	return NewContainer(srv, &tree.Node{Tag: EnvelopeTag, Attr: map[string]string{}}, initPath)
}

func (c *Container) LoadData(node *tree.Node) {
	c.LoadCommon(node)
	c.SetInt(&c.Offset, node, "offset")
	c.SetInt(&c.Size, node, "size")
	c.SetInt(&c.TotalSize, node, "totalSize")
	c.SetInt(&c.AllowSync, node, "allowSync")
	c.SetString(&c.AugmentationKey, node, "augmentationKey")
	c.SetString(&c.Identifier, node, "identifier")
	c.SetInt(&c.LibrarySectionID, node, "librarySectionID")
	c.SetString(&c.LibrarySectionTitle, node, "librarySectionTitle")
	c.SetString(&c.LibrarySectionUUID, node, "librarySectionUUID")
	c.SetString(&c.MediaTagPrefix, node, "mediaTagPrefix")
	c.SetString(&c.MediaTagVersion, node, "mediaTagVersion")
}

// Items returns the merged, ordered item sequence.
func (c *Container) Items() []Item { return c.items }

// Len returns the number of accumulated items.
func (c *Container) Len() int { return len(c.items) }

// Item returns the item at index i.
func (c *Container) Item(i int) Item { return c.items[i] }

// First returns the first item, or nil when the container is empty.
func (c *Container) First() Item {
	if len(c.items) == 0 {
		return nil
	}
	return c.items[0]
}

// Append adds items without touching the metadata.
func (c *Container) Append(items ...Item) {
	c.items = append(c.items, items...)
}

// Extend merges another container into this one: items append in order,
// the newer totalSize wins, sizes add (the other container's length stands
// in for an unset size), the offset is the minimum of the two (older data
// wins), and provenance fields fill only previously-unset slots.
//
// The same arithmetic applies whether or not the two containers are
// contiguous pages of one query; callers merging unrelated fetches get the
// documented, if approximate, size accounting.
func (c *Container) Extend(other *Container) {
	currSize := len(c.items)
	if c.Size != nil {
		currSize = *c.Size
	}

	c.items = append(c.items, other.items...)

	if other.TotalSize != nil {
		c.TotalSize = other.TotalSize
	}

	otherSize := len(other.items)
	if other.Size != nil {
		otherSize = *other.Size
	}
	merged := currSize + otherSize
	c.Size = &merged

	switch {
	case c.Offset != nil && other.Offset != nil:
		if *other.Offset < *c.Offset {
			c.Offset = other.Offset
		}
	case c.Offset == nil:
		c.Offset = other.Offset
	}

	if c.AllowSync == nil {
		c.AllowSync = other.AllowSync
	}
	if c.AugmentationKey == nil {
		c.AugmentationKey = other.AugmentationKey
	}
	if c.Identifier == nil {
		c.Identifier = other.Identifier
	}
	if c.LibrarySectionID == nil {
		c.LibrarySectionID = other.LibrarySectionID
	}
	if c.LibrarySectionTitle == nil {
		c.LibrarySectionTitle = other.LibrarySectionTitle
	}
	if c.LibrarySectionUUID == nil {
		c.LibrarySectionUUID = other.LibrarySectionUUID
	}
	if c.MediaTagPrefix == nil {
		c.MediaTagPrefix = other.MediaTagPrefix
	}
	if c.MediaTagVersion == nil {
		c.MediaTagVersion = other.MediaTagVersion
	}
}
