package media

import (
	"context"

	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

// audio carries the attributes shared by all music variants. Fields are
// snapshots of the listing node; see the package doc for completeness
// semantics on partial objects.
type audio struct {
	object.PartialObject

	Title        *string
	TitleSort    *string
	Summary      *string
	Thumb        *string
	Art          *string
	RatingKey    *int
	Index        *int
	ViewCount    *int
	LastViewedAt *int
	AddedAt      *int
	UpdatedAt    *int
}

func (a *audio) loadAudio(node *tree.Node) {
	o := a.Base()
	o.LoadCommon(node)
	o.SetString(&a.Title, node, "title")
	o.SetString(&a.TitleSort, node, "titleSort")
	o.SetString(&a.Summary, node, "summary")
	o.SetString(&a.Thumb, node, "thumb")
	o.SetString(&a.Art, node, "art")
	o.SetInt(&a.RatingKey, node, "ratingKey")
	o.SetInt(&a.Index, node, "index")
	o.SetInt(&a.ViewCount, node, "viewCount")
	o.SetInt(&a.LastViewedAt, node, "lastViewedAt")
	o.SetInt(&a.AddedAt, node, "addedAt")
	o.SetInt(&a.UpdatedAt, node, "updatedAt")
}

// Genres returns the genre tags, memoized against the backing node.
func (a *audio) Genres() []*TagEntry {
	return cachedTags(a.Base(), "genres", "Genre")
}

// Moods returns the mood tags, memoized against the backing node.
func (a *audio) Moods() []*TagEntry {
	return cachedTags(a.Base(), "moods", "Mood")
}

// Styles returns the style tags, memoized against the backing node.
func (a *audio) Styles() []*TagEntry {
	return cachedTags(a.Base(), "styles", "Style")
}

// Artist is a directory item of type artist.
type Artist struct {
	audio

	Country    *string
	Rating     *string
	LeafCount  *int
	ChildCount *int
}

func newArtist(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	a := &Artist{}
	object.InitPartial(a, srv, node, initPath, parent)
	return a
}

// LoadData populates the artist's fields from the backing node.
func (a *Artist) LoadData(node *tree.Node) {
	a.loadAudio(node)
	o := a.Base()
	o.SetString(&a.Country, node, "country")
	o.SetString(&a.Rating, node, "rating")
	o.SetInt(&a.LeafCount, node, "leafCount")
	o.SetInt(&a.ChildCount, node, "childCount")
}

// Albums fetches the artist's albums.
func (a *Artist) Albums(ctx context.Context) (*object.Container, error) {
	return a.Base().FetchItems(ctx, a.Base().Key+"/children", &object.FetchOptions{
		FindOptions: object.FindOptions{Variant: VariantAlbum},
	})
}

// Tracks fetches every track by the artist.
func (a *Artist) Tracks(ctx context.Context) (*object.Container, error) {
	return a.Base().FetchItems(ctx, a.Base().Key+"/allLeaves", &object.FetchOptions{
		FindOptions: object.FindOptions{Variant: VariantTrack},
	})
}

// Album is a directory item of type album.
type Album struct {
	audio

	ParentRatingKey       *int
	ParentTitle           *string
	Year                  *int
	Studio                *string
	LeafCount             *int
	OriginallyAvailableAt *string
}

func newAlbum(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	a := &Album{}
	object.InitPartial(a, srv, node, initPath, parent)
	return a
}

// LoadData populates the album's fields from the backing node.
func (a *Album) LoadData(node *tree.Node) {
	a.loadAudio(node)
	o := a.Base()
	o.SetInt(&a.ParentRatingKey, node, "parentRatingKey")
	o.SetString(&a.ParentTitle, node, "parentTitle")
	o.SetInt(&a.Year, node, "year")
	o.SetString(&a.Studio, node, "studio")
	o.SetInt(&a.LeafCount, node, "leafCount")
	o.SetString(&a.OriginallyAvailableAt, node, "originallyAvailableAt")
}

// Tracks fetches the album's tracks.
func (a *Album) Tracks(ctx context.Context) (*object.Container, error) {
	return a.Base().FetchItems(ctx, a.Base().Key+"/children", &object.FetchOptions{
		FindOptions: object.FindOptions{Variant: VariantTrack},
	})
}

// Track is a track item.
type Track struct {
	audio
	Playable

	GrandparentTitle *string
	ParentTitle      *string
	ParentIndex      *int
	Duration         *int
	RatingCount      *int
	Guid             *string
}

func newTrack(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	t := &Track{}
	object.InitPartial(t, srv, node, initPath, parent)
	return t
}

// LoadData populates the track's fields from the backing node.
func (t *Track) LoadData(node *tree.Node) {
	t.loadAudio(node)
	t.InitPlayable(t, "track", node)
	o := t.Base()
	o.SetString(&t.GrandparentTitle, node, "grandparentTitle")
	o.SetString(&t.ParentTitle, node, "parentTitle")
	o.SetInt(&t.ParentIndex, node, "parentIndex")
	o.SetInt(&t.Duration, node, "duration")
	o.SetInt(&t.RatingCount, node, "ratingCount")
	o.SetString(&t.Guid, node, "guid")
}

// Media returns the media elements of the track, memoized against the
// backing node.
func (t *Track) Media() []*Media {
	val := t.Base().Cached("media", func() any {
		var out []*Media
		for _, item := range t.Base().FindItems(t.Base().Data(), mediaFind).Items() {
			if m, ok := item.(*Media); ok {
				out = append(out, m)
			}
		}
		return out
	})
	out, _ := val.([]*Media)
	return out
}
