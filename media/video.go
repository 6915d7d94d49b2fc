package media

import (
	"context"

	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

// video carries the attributes shared by all video-tagged variants.
// Fields are snapshots of the listing node; see the package doc for
// completeness semantics on partial objects.
type video struct {
	object.PartialObject

	Title        *string
	TitleSort    *string
	Summary      *string
	Thumb        *string
	Art          *string
	RatingKey    *int
	ViewCount    *int
	LastViewedAt *int
	AddedAt      *int
	UpdatedAt    *int
}

func (v *video) loadVideo(node *tree.Node) {
	o := v.Base()
	o.LoadCommon(node)
	o.SetString(&v.Title, node, "title")
	o.SetString(&v.TitleSort, node, "titleSort")
	o.SetString(&v.Summary, node, "summary")
	o.SetString(&v.Thumb, node, "thumb")
	o.SetString(&v.Art, node, "art")
	o.SetInt(&v.RatingKey, node, "ratingKey")
	o.SetInt(&v.ViewCount, node, "viewCount")
	o.SetInt(&v.LastViewedAt, node, "lastViewedAt")
	o.SetInt(&v.AddedAt, node, "addedAt")
	o.SetInt(&v.UpdatedAt, node, "updatedAt")
}

// Genres returns the genre tags of the item, memoized against the backing
// node.
func (v *video) Genres() []*TagEntry {
	return cachedTags(v.Base(), "genres", "Genre")
}

// Directors returns the director tags, memoized against the backing node.
func (v *video) Directors() []*TagEntry {
	return cachedTags(v.Base(), "directors", "Director")
}

// Roles returns the cast tags, memoized against the backing node.
func (v *video) Roles() []*TagEntry {
	return cachedTags(v.Base(), "roles", "Role")
}

// Media returns the media elements of the item, memoized against the
// backing node.
func (v *video) Media() []*Media {
	val := v.Base().Cached("media", func() any {
		var out []*Media
		for _, item := range v.Base().FindItems(v.Base().Data(), mediaFind).Items() {
			if m, ok := item.(*Media); ok {
				out = append(out, m)
			}
		}
		return out
	})
	out, _ := val.([]*Media)
	return out
}

// Movie is a video item of type movie.
type Movie struct {
	video
	Playable

	Studio                *string
	ContentRating         *string
	Rating                *string
	AudienceRating        *string
	Year                  *int
	Tagline               *string
	Duration              *int
	OriginallyAvailableAt *string
	Guid                  *string
}

func newMovie(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	m := &Movie{}
	object.InitPartial(m, srv, node, initPath, parent)
	return m
}

// LoadData populates the movie's fields from the backing node.
func (m *Movie) LoadData(node *tree.Node) {
	m.loadVideo(node)
	m.InitPlayable(m, "movie", node)
	o := m.Base()
	o.SetString(&m.Studio, node, "studio")
	o.SetString(&m.ContentRating, node, "contentRating")
	o.SetString(&m.Rating, node, "rating")
	o.SetString(&m.AudienceRating, node, "audienceRating")
	o.SetInt(&m.Year, node, "year")
	o.SetString(&m.Tagline, node, "tagline")
	o.SetInt(&m.Duration, node, "duration")
	o.SetString(&m.OriginallyAvailableAt, node, "originallyAvailableAt")
	o.SetString(&m.Guid, node, "guid")
}

// Show is a directory item of type show.
type Show struct {
	video

	Studio          *string
	ContentRating   *string
	Year            *int
	Index           *int
	ChildCount      *int
	LeafCount       *int
	ViewedLeafCount *int
}

func newShow(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &Show{}
	object.InitPartial(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the show's fields from the backing node.
func (s *Show) LoadData(node *tree.Node) {
	s.loadVideo(node)
	o := s.Base()
	o.SetString(&s.Studio, node, "studio")
	o.SetString(&s.ContentRating, node, "contentRating")
	o.SetInt(&s.Year, node, "year")
	o.SetInt(&s.Index, node, "index")
	o.SetInt(&s.ChildCount, node, "childCount")
	o.SetInt(&s.LeafCount, node, "leafCount")
	o.SetInt(&s.ViewedLeafCount, node, "viewedLeafCount")
}

// Seasons fetches the seasons of the show.
func (s *Show) Seasons(ctx context.Context) (*object.Container, error) {
	return s.Base().FetchItems(ctx, s.Base().Key+"/children", &object.FetchOptions{
		FindOptions: object.FindOptions{Variant: VariantSeason},
	})
}

// Episodes fetches every episode of the show.
func (s *Show) Episodes(ctx context.Context) (*object.Container, error) {
	return s.Base().FetchItems(ctx, s.Base().Key+"/allLeaves", &object.FetchOptions{
		FindOptions: object.FindOptions{Variant: VariantEpisode},
	})
}

// Season is a directory item of type season.
type Season struct {
	video

	ParentRatingKey *int
	ParentTitle     *string
	Index           *int
	LeafCount       *int
	ViewedLeafCount *int
}

func newSeason(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &Season{}
	object.InitPartial(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the season's fields from the backing node.
func (s *Season) LoadData(node *tree.Node) {
	s.loadVideo(node)
	o := s.Base()
	o.SetInt(&s.ParentRatingKey, node, "parentRatingKey")
	o.SetString(&s.ParentTitle, node, "parentTitle")
	o.SetInt(&s.Index, node, "index")
	o.SetInt(&s.LeafCount, node, "leafCount")
	o.SetInt(&s.ViewedLeafCount, node, "viewedLeafCount")
}

// Episodes fetches the episodes of the season.
func (s *Season) Episodes(ctx context.Context) (*object.Container, error) {
	return s.Base().FetchItems(ctx, s.Base().Key+"/children", &object.FetchOptions{
		FindOptions: object.FindOptions{Variant: VariantEpisode},
	})
}

// Episode is a video item of type episode.
type Episode struct {
	video
	Playable

	GrandparentTitle *string
	ParentTitle      *string
	ParentIndex      *int
	Index            *int
	ContentRating    *string
	Duration         *int
	Guid             *string
}

func newEpisode(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	e := &Episode{}
	object.InitPartial(e, srv, node, initPath, parent)
	return e
}

// LoadData populates the episode's fields from the backing node.
func (e *Episode) LoadData(node *tree.Node) {
	e.loadVideo(node)
	e.InitPlayable(e, "episode", node)
	o := e.Base()
	o.SetString(&e.GrandparentTitle, node, "grandparentTitle")
	o.SetString(&e.ParentTitle, node, "parentTitle")
	o.SetInt(&e.ParentIndex, node, "parentIndex")
	o.SetInt(&e.Index, node, "index")
	o.SetString(&e.ContentRating, node, "contentRating")
	o.SetInt(&e.Duration, node, "duration")
	o.SetString(&e.Guid, node, "guid")
}

// Clip is a short-form video item (trailer, extra, preroll).
type Clip struct {
	video
	Playable

	Duration *int
	Subtype  *string
	Guid     *string
}

func newClip(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	c := &Clip{}
	object.InitPartial(c, srv, node, initPath, parent)
	return c
}

// LoadData populates the clip's fields from the backing node.
func (c *Clip) LoadData(node *tree.Node) {
	c.loadVideo(node)
	c.InitPlayable(c, "clip", node)
	o := c.Base()
	o.SetInt(&c.Duration, node, "duration")
	o.SetString(&c.Subtype, node, "subtype")
	o.SetString(&c.Guid, node, "guid")
}
