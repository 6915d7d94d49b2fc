package media

import (
	"github.com/teranos/mediagraph/object"
)

// Library item variants.
var (
	VariantMovie   = &object.Variant{Tag: "Video", Type: "movie", New: newMovie}
	VariantShow    = &object.Variant{Tag: "Directory", Type: "show", New: newShow}
	VariantSeason  = &object.Variant{Tag: "Directory", Type: "season", New: newSeason}
	VariantEpisode = &object.Variant{Tag: "Video", Type: "episode", New: newEpisode}
	VariantClip    = &object.Variant{Tag: "Video", Type: "clip", New: newClip}
	VariantArtist  = &object.Variant{Tag: "Directory", Type: "artist", New: newArtist}
	VariantAlbum   = &object.Variant{Tag: "Directory", Type: "album", New: newAlbum}
	VariantTrack   = &object.Variant{Tag: "Track", Type: "track", New: newTrack}
	VariantPhoto   = &object.Variant{Tag: "Photo", Type: "photo", New: newPhoto}
)

// Media tree variants.
var (
	VariantMedia          = &object.Variant{Tag: "Media", New: newMedia}
	VariantPart           = &object.Variant{Tag: "Part", New: newMediaPart}
	VariantVideoStream    = &object.Variant{Tag: "Stream", Type: "1", New: newVideoStream}
	VariantAudioStream    = &object.Variant{Tag: "Stream", Type: "2", New: newAudioStream}
	VariantSubtitleStream = &object.Variant{Tag: "Stream", Type: "3", New: newSubtitleStream}
	VariantLyricStream    = &object.Variant{Tag: "Stream", Type: "4", New: newLyricStream}
)

// Session element variants.
var (
	VariantPlayer           = &object.Variant{Tag: "Player", New: newPlayer}
	VariantBandwidthSession = &object.Variant{Tag: "Session", New: newBandwidthSession}
	VariantTranscodeSession = &object.Variant{Tag: "TranscodeSession", New: newTranscodeSession}
)

// Session- and history-context variants. The Type here is the full
// context-suffixed discriminator so the canonical key matches the dispatch
// key computed for sessions and history listings; these variants are never
// used as find targets, only as registry entries.
var (
	variantMovieSession   = &object.Variant{Tag: "Video", Type: "movie.session", New: newMovieSession}
	variantEpisodeSession = &object.Variant{Tag: "Video", Type: "episode.session", New: newEpisodeSession}
	variantClipSession    = &object.Variant{Tag: "Video", Type: "clip.session", New: newClipSession}
	variantTrackSession   = &object.Variant{Tag: "Track", Type: "track.session", New: newTrackSession}

	variantMovieHistory   = &object.Variant{Tag: "Video", Type: "movie.history", New: newMovieHistory}
	variantEpisodeHistory = &object.Variant{Tag: "Video", Type: "episode.history", New: newEpisodeHistory}
	variantClipHistory    = &object.Variant{Tag: "Video", Type: "clip.history", New: newClipHistory}
	variantTrackHistory   = &object.Variant{Tag: "Track", Type: "track.history", New: newTrackHistory}
)

func init() {
	object.Register(VariantMovie)
	object.Register(VariantShow)
	object.Register(VariantSeason)
	object.Register(VariantEpisode)
	// Bare-tag fallback: extras and trailers are clips without a type
	// attribute in some listing contexts.
	object.Register(VariantClip, "Video")
	object.Register(VariantArtist)
	object.Register(VariantAlbum)
	// Playlist items carry the Track tag without a type attribute.
	object.Register(VariantTrack, "Track")
	object.Register(VariantPhoto, "Photo")

	object.Register(VariantMedia)
	object.Register(VariantPart)
	object.Register(VariantVideoStream)
	object.Register(VariantAudioStream)
	object.Register(VariantSubtitleStream)
	object.Register(VariantLyricStream)

	object.Register(VariantPlayer)
	object.Register(VariantBandwidthSession)
	object.Register(VariantTranscodeSession)

	object.Register(variantMovieSession)
	object.Register(variantEpisodeSession)
	object.Register(variantClipSession)
	object.Register(variantTrackSession)

	object.Register(variantMovieHistory)
	object.Register(variantEpisodeHistory)
	object.Register(variantClipHistory)
	object.Register(variantTrackHistory)

	// Tag elements share one shape; the element name is the whole
	// dispatch story.
	for _, tag := range []string{
		"Genre", "Director", "Writer", "Producer", "Role", "Country",
		"Collection", "Label", "Mood", "Style", "Similar", "Guid",
		"Field", "Chapter", "Marker",
	} {
		object.Register(&object.Variant{Tag: tag, New: newTagEntry})
	}
}
