// Package media defines the concrete variants materialized from server
// responses: library items (movies, shows, music, photos), their media and
// stream trees, tag elements, and the live-session and history wrappers.
// All variants are registered with the object registry during package
// initialization.
//
// Exported struct fields are a snapshot of the node the variant was built
// from; a field is nil when the listing omitted the attribute. Only the
// Attr accessors on the embedded Object fetch the full record on a miss,
// so callers that need completeness on partial objects should read through
// Attr, AttrInt, and AttrBool rather than the fields.
package media

import (
	"net/url"
	"regexp"

	"github.com/spf13/cast"
	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

// URLBuilder is implemented by transports that can render absolute server
// URLs. Stream URL construction needs it; everything else in this package
// works against the plain object.Server boundary.
type URLBuilder interface {
	BuildURL(path string, includeToken bool) string
}

// Types that support stream URL construction.
var streamableTypes = map[string]struct{}{
	"movie":   {},
	"episode": {},
	"track":   {},
	"clip":    {},
}

var resolutionPattern = regexp.MustCompile(`^\d+x\d+$`)

// Playable is embedded by variants that can be played back directly.
// Shows, seasons, artists, and albums are containers, not playables.
type Playable struct {
	base *object.Object
	typ  string

	// PlaylistItemID is populated for playlist items only.
	PlaylistItemID *int
	// PlayQueueItemID is populated for play queue items only.
	PlayQueueItemID *int
}

// InitPlayable populates the playback attributes. Variants call it from
// LoadData.
func (p *Playable) InitPlayable(item object.Item, typ string, node *tree.Node) {
	o := item.Base()
	p.base = o
	p.typ = typ
	o.SetInt(&p.PlaylistItemID, node, "playlistItemID")
	o.SetInt(&p.PlayQueueItemID, node, "playQueueItemID")
}

// StreamOptions adjust the transcoded stream request.
type StreamOptions struct {
	MaxVideoBitrate int
	VideoResolution string // "WIDTHxHEIGHT", dropped when malformed
	Protocol        string // "dash" selects an mpd manifest, anything else m3u8
	MediaIndex      int
	PartIndex       int
	Offset          int
	Platform        string
	NoFastSeek      bool
	NoCopyTS        bool
	Extra           url.Values
}

// StreamURL returns a transcode stream URL usable by external players.
// Fails with an unsupported-operation error for non-streamable variants
// and for transports that cannot build absolute URLs.
func (p *Playable) StreamURL(opts *StreamOptions) (string, error) {
	if _, ok := streamableTypes[p.typ]; !ok {
		return "", errors.NewUnsupportedf("fetching stream URL for %s is unsupported", p.typ)
	}
	builder, ok := p.base.Server().(URLBuilder)
	if !ok {
		return "", errors.NewUnsupportedf("transport cannot build stream URLs")
	}
	if opts == nil {
		opts = &StreamOptions{}
	}

	params := url.Values{}
	params.Set("path", p.base.Key)
	params.Set("mediaIndex", cast.ToString(opts.MediaIndex))
	params.Set("partIndex", cast.ToString(opts.PartIndex))
	params.Set("fastSeek", boolParam(!opts.NoFastSeek))
	params.Set("copyts", boolParam(!opts.NoCopyTS))
	params.Set("offset", cast.ToString(opts.Offset))
	if opts.Protocol != "" {
		params.Set("protocol", opts.Protocol)
	}
	if opts.MaxVideoBitrate > 0 {
		mvb := opts.MaxVideoBitrate
		if mvb < 64 {
			mvb = 64
		}
		params.Set("maxVideoBitrate", cast.ToString(mvb))
	}
	if resolutionPattern.MatchString(opts.VideoResolution) {
		params.Set("videoResolution", opts.VideoResolution)
	}
	platform := opts.Platform
	if platform == "" {
		platform = "Chrome"
	}
	params.Set("X-Plex-Platform", platform)
	for k, vs := range opts.Extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	streamType := "video"
	if p.typ == "track" || p.typ == "album" {
		streamType = "audio"
	}
	ext := "m3u8"
	if opts.Protocol == "dash" {
		ext = "mpd"
	}

	path := "/" + streamType + "/:/transcode/universal/start." + ext + "?" + params.Encode()
	return builder.BuildURL(path, true), nil
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
