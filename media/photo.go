package media

import (
	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

// Photo is a photo item.
type Photo struct {
	object.PartialObject

	Title                 *string
	Summary               *string
	Thumb                 *string
	RatingKey             *int
	Index                 *int
	Year                  *int
	ParentTitle           *string
	CreatedAtAccuracy     *string
	OriginallyAvailableAt *string
	AddedAt               *int
	UpdatedAt             *int
}

func newPhoto(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	p := &Photo{}
	object.InitPartial(p, srv, node, initPath, parent)
	return p
}

// LoadData populates the photo's fields from the backing node.
func (p *Photo) LoadData(node *tree.Node) {
	o := p.Base()
	o.LoadCommon(node)
	o.SetString(&p.Title, node, "title")
	o.SetString(&p.Summary, node, "summary")
	o.SetString(&p.Thumb, node, "thumb")
	o.SetInt(&p.RatingKey, node, "ratingKey")
	o.SetInt(&p.Index, node, "index")
	o.SetInt(&p.Year, node, "year")
	o.SetString(&p.ParentTitle, node, "parentTitle")
	o.SetString(&p.CreatedAtAccuracy, node, "createdAtAccuracy")
	o.SetString(&p.OriginallyAvailableAt, node, "originallyAvailableAt")
	o.SetInt(&p.AddedAt, node, "addedAt")
	o.SetInt(&p.UpdatedAt, node, "updatedAt")
}

// Media returns the media elements of the photo, memoized against the
// backing node.
func (p *Photo) Media() []*Media {
	val := p.Base().Cached("media", func() any {
		var out []*Media
		for _, item := range p.Base().FindItems(p.Base().Data(), mediaFind).Items() {
			if m, ok := item.(*Media); ok {
				out = append(out, m)
			}
		}
		return out
	})
	out, _ := val.([]*Media)
	return out
}
