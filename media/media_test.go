package media

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

// fakeServer serves canned attribute trees keyed by path.
type fakeServer struct {
	responses map[string]string
	queried   []string
	pageSize  int
}

func (f *fakeServer) Query(_ context.Context, path, _ string, _ map[string]string, _ url.Values) (*tree.Node, error) {
	f.queried = append(f.queried, path)
	body, ok := f.responses[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "not found: %s", path)
	}
	return tree.ParseString(body)
}

func (f *fakeServer) ApplyEdits(context.Context, []object.Item, map[string]string) error {
	return nil
}

func (f *fakeServer) DefaultPageSize() int {
	if f.pageSize > 0 {
		return f.pageSize
	}
	return 100
}

func (f *fakeServer) AutoReload() bool { return true }

// fakeURLServer additionally renders absolute URLs, like the real client.
type fakeURLServer struct {
	fakeServer
}

func (f *fakeURLServer) BuildURL(path string, includeToken bool) string {
	u := "http://127.0.0.1:32400" + path
	if includeToken {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		u += sep + "X-Plex-Token=secret"
	}
	return u
}

const movieXML = `<MediaContainer size="1" librarySectionID="1">
  <Video ratingKey="101" key="/library/metadata/101" type="movie" title="Cosmos"
         year="2019" duration="5400000" studio="Big Pictures">
    <Genre id="7" tag="Documentary" />
    <Genre id="9" tag="Science" />
    <Director id="12" tag="A. Director" />
    <Media id="55" duration="5400000" bitrate="8000" width="1920" height="1080"
           container="mkv" videoCodec="h264" audioCodec="aac">
      <Part id="77" duration="5400000" file="/data/cosmos.mkv" size="4294967296" container="mkv">
        <Stream id="1" streamType="1" codec="h264" width="1920" height="1080" default="1" />
        <Stream id="2" streamType="2" codec="aac" channels="6" selected="1" />
        <Stream id="3" streamType="3" codec="srt" format="srt" language="English" />
      </Part>
    </Media>
  </Video>
</MediaContainer>`

func fetchMovie(t *testing.T, srv object.Server) *Movie {
	t.Helper()
	root := &object.Container{}
	object.Init(root, srv, &tree.Node{Tag: object.EnvelopeTag}, "/", nil)
	item, err := root.FetchItem(context.Background(), "/library/metadata/101", &object.FetchOptions{
		FindOptions: object.FindOptions{Variant: VariantMovie},
	})
	require.NoError(t, err)
	m, ok := item.(*Movie)
	require.True(t, ok, "expected *Movie, got %T", item)
	return m
}

func TestMovieDispatchAndFields(t *testing.T) {
	srv := &fakeServer{responses: map[string]string{"/library/metadata/101": movieXML}}
	m := fetchMovie(t, srv)

	require.NotNil(t, m.Title)
	assert.Equal(t, "Cosmos", *m.Title)
	require.NotNil(t, m.Year)
	assert.Equal(t, 2019, *m.Year)
	require.NotNil(t, m.Duration)
	assert.Equal(t, 5400000, *m.Duration)
	assert.Equal(t, "/library/metadata/101", m.Base().Key)
	assert.Equal(t, 1, m.Base().LibrarySectionID)
}

func TestMovieTagsMemoized(t *testing.T) {
	srv := &fakeServer{responses: map[string]string{"/library/metadata/101": movieXML}}
	m := fetchMovie(t, srv)

	genres := m.Genres()
	require.Len(t, genres, 2)
	assert.Equal(t, "Documentary", *genres[0].Tag)
	assert.Equal(t, "Science", *genres[1].Tag)

	// Same backing node, same slice.
	again := m.Genres()
	assert.Same(t, genres[0], again[0])

	directors := m.Directors()
	require.Len(t, directors, 1)
	assert.Equal(t, "A. Director", *directors[0].Tag)
}

func TestMediaTreeStreamDispatch(t *testing.T) {
	srv := &fakeServer{responses: map[string]string{"/library/metadata/101": movieXML}}
	m := fetchMovie(t, srv)

	media := m.Media()
	require.Len(t, media, 1)
	require.NotNil(t, media[0].VideoCodec)
	assert.Equal(t, "h264", *media[0].VideoCodec)

	parts := media[0].Parts()
	require.Len(t, parts, 1)
	require.NotNil(t, parts[0].File)
	assert.Equal(t, "/data/cosmos.mkv", *parts[0].File)

	streams := parts[0].Streams()
	require.Len(t, streams, 3)
	_, isVideo := streams[0].(*VideoStream)
	_, isAudio := streams[1].(*AudioStream)
	sub, isSub := streams[2].(*SubtitleStream)
	assert.True(t, isVideo)
	assert.True(t, isAudio)
	require.True(t, isSub)
	require.NotNil(t, sub.Format)
	assert.Equal(t, "srt", *sub.Format)
}

func TestStreamURL(t *testing.T) {
	srv := &fakeURLServer{fakeServer{responses: map[string]string{"/library/metadata/101": movieXML}}}
	m := fetchMovie(t, srv)

	u, err := m.StreamURL(&StreamOptions{MaxVideoBitrate: 20})
	require.NoError(t, err)
	assert.Contains(t, u, "/video/:/transcode/universal/start.m3u8?")
	assert.Contains(t, u, "path=%2Flibrary%2Fmetadata%2F101")
	// Bitrate floor.
	assert.Contains(t, u, "maxVideoBitrate=64")
	assert.Contains(t, u, "X-Plex-Token=secret")

	u, err = m.StreamURL(&StreamOptions{Protocol: "dash"})
	require.NoError(t, err)
	assert.Contains(t, u, "start.mpd?")
}

func TestStreamURLUnsupported(t *testing.T) {
	// Transport without URL building.
	srv := &fakeServer{responses: map[string]string{"/library/metadata/101": movieXML}}
	m := fetchMovie(t, srv)
	_, err := m.StreamURL(nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupported(err))
}

const sessionsXML = `<MediaContainer size="1">
  <Video ratingKey="101" key="/library/metadata/101" type="movie" title="Cosmos"
         sessionKey="3" live="0">
    <User id="1" title="alice" />
    <Player title="Chrome" state="playing" machineIdentifier="abc123" />
    <Session id="sess-9" bandwidth="8001" location="lan" />
    <TranscodeSession key="/transcode/sessions/zz" throttled="1" videoDecision="transcode" />
  </Video>
</MediaContainer>`

func TestSessionDispatch(t *testing.T) {
	srv := &fakeServer{responses: map[string]string{"/status/sessions": sessionsXML}}
	root := &object.Container{}
	object.Init(root, srv, &tree.Node{Tag: object.EnvelopeTag}, "/", nil)

	results, err := root.FetchItems(context.Background(), "/status/sessions", nil)
	require.NoError(t, err)
	require.Equal(t, 1, results.Len())

	sess, ok := results.First().(*MovieSession)
	require.True(t, ok, "expected *MovieSession, got %T", results.First())

	assert.Equal(t, 3, sess.SessionKey)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, 1, sess.UserID)
	assert.False(t, sess.Live)
	require.NotNil(t, sess.Title)
	assert.Equal(t, "Cosmos", *sess.Title)

	player, ok := sess.Player().(*Player)
	require.True(t, ok)
	require.NotNil(t, player.State)
	assert.Equal(t, "playing", *player.State)

	bw, ok := sess.Session().(*BandwidthSession)
	require.True(t, ok)
	require.NotNil(t, bw.Bandwidth)
	assert.Equal(t, 8001, *bw.Bandwidth)

	tr, ok := sess.TranscodeSession().(*TranscodeSession)
	require.True(t, ok)
	require.NotNil(t, tr.Throttled)
	assert.True(t, *tr.Throttled)
}

func TestSessionStop(t *testing.T) {
	srv := &fakeServer{responses: map[string]string{
		"/status/sessions":           sessionsXML,
		"/status/sessions/terminate": `<Response code="200" />`,
	}}
	root := &object.Container{}
	object.Init(root, srv, &tree.Node{Tag: object.EnvelopeTag}, "/", nil)

	results, err := root.FetchItems(context.Background(), "/status/sessions", nil)
	require.NoError(t, err)
	sess := results.First().(*MovieSession)

	require.NoError(t, sess.Stop(context.Background(), "done for today"))
	assert.Equal(t, "/status/sessions/terminate", srv.queried[len(srv.queried)-1])
}

const historyXML = `<MediaContainer size="2">
  <Video historyKey="/status/sessions/history/201" key="/library/metadata/101"
         ratingKey="101" type="movie" title="Cosmos" accountID="1" deviceID="4"
         viewedAt="1700000000" />
  <Track historyKey="/status/sessions/history/202" key="/library/metadata/301"
         ratingKey="301" type="track" title="Aria" accountID="1" deviceID="4"
         viewedAt="1700003600" />
</MediaContainer>`

func TestHistoryDispatch(t *testing.T) {
	srv := &fakeServer{responses: map[string]string{"/status/sessions/history/all": historyXML}}
	root := &object.Container{}
	object.Init(root, srv, &tree.Node{Tag: object.EnvelopeTag}, "/", nil)

	results, err := root.FetchItems(context.Background(), "/status/sessions/history/all", nil)
	require.NoError(t, err)
	require.Equal(t, 2, results.Len())

	movie, ok := results.Item(0).(*MovieHistory)
	require.True(t, ok, "expected *MovieHistory, got %T", results.Item(0))
	assert.Equal(t, 1, movie.AccountID)
	assert.Equal(t, 4, movie.DeviceID)
	assert.Equal(t, "/status/sessions/history/201", movie.HistoryKey)
	assert.Equal(t, int64(1700000000), movie.ViewedAt.Unix())

	track, ok := results.Item(1).(*TrackHistory)
	require.True(t, ok, "expected *TrackHistory, got %T", results.Item(1))
	assert.Equal(t, "Aria", *track.Title)

	// History records never reload.
	err = movie.Reload(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupported(err))
}

func TestClipFallbackForUntypedVideo(t *testing.T) {
	srv := &fakeServer{responses: map[string]string{
		"/library/metadata/101/extras": `<MediaContainer size="1">
  <Video ratingKey="501" key="/library/metadata/501" title="Teaser" subtype="trailer" />
</MediaContainer>`,
	}}
	root := &object.Container{}
	object.Init(root, srv, &tree.Node{Tag: object.EnvelopeTag}, "/", nil)

	results, err := root.FetchItems(context.Background(), "/library/metadata/101/extras", nil)
	require.NoError(t, err)
	require.Equal(t, 1, results.Len())
	clip, ok := results.First().(*Clip)
	require.True(t, ok, "expected *Clip, got %T", results.First())
	require.NotNil(t, clip.Subtype)
	assert.Equal(t, "trailer", *clip.Subtype)
}
