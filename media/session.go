package media

import (
	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

// Player is the client device element attached to a live session.
type Player struct {
	object.Object

	Address           *string
	Device            *string
	MachineIdentifier *string
	Model             *string
	Platform          *string
	PlatformVersion   *string
	Product           *string
	Profile           *string
	State             *string
	Title             *string
	Version           *string
	Local             *bool
	Relayed           *bool
	Secure            *bool
	UserID            *int
}

func newPlayer(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	p := &Player{}
	object.Init(p, srv, node, initPath, parent)
	return p
}

// LoadData populates the player's fields from the backing node.
func (p *Player) LoadData(node *tree.Node) {
	p.LoadCommon(node)
	p.SetString(&p.Address, node, "address")
	p.SetString(&p.Device, node, "device")
	p.SetString(&p.MachineIdentifier, node, "machineIdentifier")
	p.SetString(&p.Model, node, "model")
	p.SetString(&p.Platform, node, "platform")
	p.SetString(&p.PlatformVersion, node, "platformVersion")
	p.SetString(&p.Product, node, "product")
	p.SetString(&p.Profile, node, "profile")
	p.SetString(&p.State, node, "state")
	p.SetString(&p.Title, node, "title")
	p.SetString(&p.Version, node, "version")
	p.SetBool(&p.Local, node, "local")
	p.SetBool(&p.Relayed, node, "relayed")
	p.SetBool(&p.Secure, node, "secure")
	p.SetInt(&p.UserID, node, "userID")
}

// BandwidthSession is the bandwidth accounting element attached to a live
// session.
type BandwidthSession struct {
	object.Object

	ID        *string
	Bandwidth *int
	Location  *string
}

func newBandwidthSession(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &BandwidthSession{}
	object.Init(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the session's fields from the backing node.
func (s *BandwidthSession) LoadData(node *tree.Node) {
	s.LoadCommon(node)
	s.SetString(&s.ID, node, "id")
	s.SetInt(&s.Bandwidth, node, "bandwidth")
	s.SetString(&s.Location, node, "location")
}

// TranscodeSession describes an in-flight transcode.
type TranscodeSession struct {
	object.Object

	ID                      *string
	Throttled               *bool
	Complete                *bool
	Progress                *string
	Speed                   *string
	Duration                *int
	Context                 *string
	Protocol                *string
	Container               *string
	VideoDecision           *string
	AudioDecision           *string
	VideoCodec              *string
	AudioCodec              *string
	Width                   *int
	Height                  *int
	AudioChannels           *int
	TranscodeHwRequested    *bool
	TranscodeHwFullPipeline *bool
}

func newTranscodeSession(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	t := &TranscodeSession{}
	object.Init(t, srv, node, initPath, parent)
	return t
}

// LoadData populates the transcode session's fields from the backing node.
func (t *TranscodeSession) LoadData(node *tree.Node) {
	t.LoadCommon(node)
	t.SetString(&t.ID, node, "key")
	t.SetBool(&t.Throttled, node, "throttled")
	t.SetBool(&t.Complete, node, "complete")
	t.SetString(&t.Progress, node, "progress")
	t.SetString(&t.Speed, node, "speed")
	t.SetInt(&t.Duration, node, "duration")
	t.SetString(&t.Context, node, "context")
	t.SetString(&t.Protocol, node, "protocol")
	t.SetString(&t.Container, node, "container")
	t.SetString(&t.VideoDecision, node, "videoDecision")
	t.SetString(&t.AudioDecision, node, "audioDecision")
	t.SetString(&t.VideoCodec, node, "videoCodec")
	t.SetString(&t.AudioCodec, node, "audioCodec")
	t.SetInt(&t.Width, node, "width")
	t.SetInt(&t.Height, node, "height")
	t.SetInt(&t.AudioChannels, node, "audioChannels")
	t.SetBool(&t.TranscodeHwRequested, node, "transcodeHwRequested")
	t.SetBool(&t.TranscodeHwFullPipeline, node, "transcodeHwFullPipeline")
}

// Live-session variants: the library item shape plus the session
// attributes, fetched from the active sessions listing.

// MovieSession is a movie currently being played.
type MovieSession struct {
	Movie
	object.SessionCore
}

func newMovieSession(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &MovieSession{}
	object.InitPartial(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the item and session fields from the backing node.
func (s *MovieSession) LoadData(node *tree.Node) {
	s.Movie.LoadData(node)
	s.InitSession(s, node)
}

// EpisodeSession is an episode currently being played.
type EpisodeSession struct {
	Episode
	object.SessionCore
}

func newEpisodeSession(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &EpisodeSession{}
	object.InitPartial(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the item and session fields from the backing node.
func (s *EpisodeSession) LoadData(node *tree.Node) {
	s.Episode.LoadData(node)
	s.InitSession(s, node)
}

// TrackSession is a track currently being played.
type TrackSession struct {
	Track
	object.SessionCore
}

func newTrackSession(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &TrackSession{}
	object.InitPartial(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the item and session fields from the backing node.
func (s *TrackSession) LoadData(node *tree.Node) {
	s.Track.LoadData(node)
	s.InitSession(s, node)
}

// ClipSession is a clip currently being played.
type ClipSession struct {
	Clip
	object.SessionCore
}

func newClipSession(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	s := &ClipSession{}
	object.InitPartial(s, srv, node, initPath, parent)
	return s
}

// LoadData populates the item and session fields from the backing node.
func (s *ClipSession) LoadData(node *tree.Node) {
	s.Clip.LoadData(node)
	s.InitSession(s, node)
}

// History variants: the library item shape plus the watch-record
// attributes, fetched from the play history listing.

// MovieHistory is a movie watch record.
type MovieHistory struct {
	Movie
	object.HistoryCore
}

func newMovieHistory(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	h := &MovieHistory{}
	object.InitPartial(h, srv, node, initPath, parent)
	return h
}

// LoadData populates the item and history fields from the backing node.
func (h *MovieHistory) LoadData(node *tree.Node) {
	h.Movie.LoadData(node)
	h.InitHistory(h, node)
}

// EpisodeHistory is an episode watch record.
type EpisodeHistory struct {
	Episode
	object.HistoryCore
}

func newEpisodeHistory(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	h := &EpisodeHistory{}
	object.InitPartial(h, srv, node, initPath, parent)
	return h
}

// LoadData populates the item and history fields from the backing node.
func (h *EpisodeHistory) LoadData(node *tree.Node) {
	h.Episode.LoadData(node)
	h.InitHistory(h, node)
}

// TrackHistory is a track listen record.
type TrackHistory struct {
	Track
	object.HistoryCore
}

func newTrackHistory(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	h := &TrackHistory{}
	object.InitPartial(h, srv, node, initPath, parent)
	return h
}

// LoadData populates the item and history fields from the backing node.
func (h *TrackHistory) LoadData(node *tree.Node) {
	h.Track.LoadData(node)
	h.InitHistory(h, node)
}

// ClipHistory is a clip watch record.
type ClipHistory struct {
	Clip
	object.HistoryCore
}

func newClipHistory(srv object.Server, node *tree.Node, initPath string, parent object.Item) object.Item {
	h := &ClipHistory{}
	object.InitPartial(h, srv, node, initPath, parent)
	return h
}

// LoadData populates the item and history fields from the backing node.
func (h *ClipHistory) LoadData(node *tree.Node) {
	h.Clip.LoadData(node)
	h.InitHistory(h, node)
}
