package media

import (
	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

var (
	mediaFind  = &object.FindOptions{Variant: VariantMedia}
	partFind   = &object.FindOptions{Variant: VariantPart}
	streamFind = &object.FindOptions{Filters: map[string]any{"etag": "Stream"}}
)

// Media is one playable rendition of a library item. An item can carry
// several, one per quality or container version.
type Media struct {
	object.Object

	ID                    *int
	Duration              *int
	Bitrate               *int
	Width                 *int
	Height                *int
	AspectRatio           *string
	AudioChannels         *int
	AudioCodec            *string
	VideoCodec            *string
	VideoResolution       *string
	VideoFrameRate        *string
	VideoProfile          *string
	Container             *string
	OptimizedForStreaming *bool
}

func newMedia(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	m := &Media{}
	object.Init(m, srv, node, initPath, parent)
	return m
}

// LoadData populates the media's fields from the backing node.
func (m *Media) LoadData(node *tree.Node) {
	m.LoadCommon(node)
	m.SetInt(&m.ID, node, "id")
	m.SetInt(&m.Duration, node, "duration")
	m.SetInt(&m.Bitrate, node, "bitrate")
	m.SetInt(&m.Width, node, "width")
	m.SetInt(&m.Height, node, "height")
	m.SetString(&m.AspectRatio, node, "aspectRatio")
	m.SetInt(&m.AudioChannels, node, "audioChannels")
	m.SetString(&m.AudioCodec, node, "audioCodec")
	m.SetString(&m.VideoCodec, node, "videoCodec")
	m.SetString(&m.VideoResolution, node, "videoResolution")
	m.SetString(&m.VideoFrameRate, node, "videoFrameRate")
	m.SetString(&m.VideoProfile, node, "videoProfile")
	m.SetString(&m.Container, node, "container")
	m.SetBool(&m.OptimizedForStreaming, node, "optimizedForStreaming")
}

// Parts returns the file parts of the rendition, memoized against the
// backing node.
func (m *Media) Parts() []*MediaPart {
	val := m.Cached("parts", func() any {
		var out []*MediaPart
		for _, item := range m.FindItems(m.Data(), partFind).Items() {
			if p, ok := item.(*MediaPart); ok {
				out = append(out, p)
			}
		}
		return out
	})
	out, _ := val.([]*MediaPart)
	return out
}

// MediaPart is one file backing a media rendition.
type MediaPart struct {
	object.Object

	ID           *int
	Duration     *int
	File         *string
	Size         *int
	Container    *string
	AudioProfile *string
	VideoProfile *string
	Indexes      *string
	Exists       *bool
	Accessible   *bool
}

func newMediaPart(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	p := &MediaPart{}
	object.Init(p, srv, node, initPath, parent)
	return p
}

// LoadData populates the part's fields from the backing node.
func (p *MediaPart) LoadData(node *tree.Node) {
	p.LoadCommon(node)
	p.SetInt(&p.ID, node, "id")
	p.SetInt(&p.Duration, node, "duration")
	p.SetString(&p.File, node, "file")
	p.SetInt(&p.Size, node, "size")
	p.SetString(&p.Container, node, "container")
	p.SetString(&p.AudioProfile, node, "audioProfile")
	p.SetString(&p.VideoProfile, node, "videoProfile")
	p.SetString(&p.Indexes, node, "indexes")
	p.SetBool(&p.Exists, node, "exists")
	p.SetBool(&p.Accessible, node, "accessible")
}

// Streams returns every stream of the part, memoized against the backing
// node.
func (p *MediaPart) Streams() []object.Item {
	val := p.Cached("streams", func() any {
		return p.FindItems(p.Data(), streamFind).Items()
	})
	out, _ := val.([]object.Item)
	return out
}

// streamCore carries the attributes shared by every stream kind.
type streamCore struct {
	object.Object

	ID           *int
	StreamType   *int
	Codec        *string
	Index        *int
	Language     *string
	LanguageCode *string
	LanguageTag  *string
	Title        *string
	DisplayTitle *string
	Selected     *bool
	Default      *bool
}

func (s *streamCore) loadStream(node *tree.Node) {
	s.LoadCommon(node)
	s.SetInt(&s.ID, node, "id")
	s.SetInt(&s.StreamType, node, "streamType")
	s.SetString(&s.Codec, node, "codec")
	s.SetInt(&s.Index, node, "index")
	s.SetString(&s.Language, node, "language")
	s.SetString(&s.LanguageCode, node, "languageCode")
	s.SetString(&s.LanguageTag, node, "languageTag")
	s.SetString(&s.Title, node, "title")
	s.SetString(&s.DisplayTitle, node, "displayTitle")
	s.SetBool(&s.Selected, node, "selected")
	s.SetBool(&s.Default, node, "default")
}

// VideoStream is a stream of type 1.
type VideoStream struct {
	streamCore

	Width             *int
	Height            *int
	Bitrate           *int
	BitDepth          *int
	FrameRate         *string
	Profile           *string
	ColorSpace        *string
	ChromaSubsampling *string
}

func newVideoStream(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &VideoStream{}
	object.Init(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the stream's fields from the backing node.
func (s *VideoStream) LoadData(node *tree.Node) {
	s.loadStream(node)
	s.SetInt(&s.Width, node, "width")
	s.SetInt(&s.Height, node, "height")
	s.SetInt(&s.Bitrate, node, "bitrate")
	s.SetInt(&s.BitDepth, node, "bitDepth")
	s.SetString(&s.FrameRate, node, "frameRate")
	s.SetString(&s.Profile, node, "profile")
	s.SetString(&s.ColorSpace, node, "colorSpace")
	s.SetString(&s.ChromaSubsampling, node, "chromaSubsampling")
}

// AudioStream is a stream of type 2.
type AudioStream struct {
	streamCore

	Channels      *int
	ChannelLayout *string
	SamplingRate  *int
	Bitrate       *int
	Profile       *string
}

func newAudioStream(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &AudioStream{}
	object.Init(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the stream's fields from the backing node.
func (s *AudioStream) LoadData(node *tree.Node) {
	s.loadStream(node)
	s.SetInt(&s.Channels, node, "channels")
	s.SetString(&s.ChannelLayout, node, "audioChannelLayout")
	s.SetInt(&s.SamplingRate, node, "samplingRate")
	s.SetInt(&s.Bitrate, node, "bitrate")
	s.SetString(&s.Profile, node, "profile")
}

// SubtitleStream is a stream of type 3.
type SubtitleStream struct {
	streamCore

	Format *string
	Forced *bool
}

func newSubtitleStream(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &SubtitleStream{}
	object.Init(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the stream's fields from the backing node.
func (s *SubtitleStream) LoadData(node *tree.Node) {
	s.loadStream(node)
	s.SetString(&s.Format, node, "format")
	s.SetBool(&s.Forced, node, "forced")
}

// LyricStream is a stream of type 4.
type LyricStream struct {
	streamCore

	Format     *string
	MinLines   *int
	Provider   *string
	TimedLines *bool
}

func newLyricStream(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &LyricStream{}
	object.Init(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the stream's fields from the backing node.
func (s *LyricStream) LoadData(node *tree.Node) {
	s.loadStream(node)
	s.SetString(&s.Format, node, "format")
	s.SetInt(&s.MinLines, node, "minLines")
	s.SetString(&s.Provider, node, "provider")
	s.SetBool(&s.TimedLines, node, "timedLines")
}
