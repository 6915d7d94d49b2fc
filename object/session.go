package object

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spf13/cast"
	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/filter"
	"github.com/teranos/mediagraph/tree"
)

// SessionCore is embedded by live-session variants. Session entries are
// ephemeral: they cannot be re-fetched by key, so reloads re-find the
// entry inside the sessions listing and implicit reload-on-access is
// disabled.
type SessionCore struct {
	base *Object

	// Live is true for a live TV session.
	Live bool
	// SessionKey identifies the session inside the listing.
	SessionKey int

	Username string
	UserID   int
}

// Session is satisfied by every session-context variant; Core gives
// callers the shared session state without caring which item shape is
// playing.
type Session interface {
	Item
	Core() *SessionCore
}

// Core returns the shared session state; embedding variants satisfy
// Session through promotion.
func (s *SessionCore) Core() *SessionCore { return s }

// InitSession populates the session attributes and exempts the object from
// implicit reloads. Variants call it from LoadData.
func (s *SessionCore) InitSession(item Item, node *tree.Node) {
	o := item.Base()
	s.base = o
	o.markReloadExempt()

	live, _ := node.Get("live")
	s.Live = cast.ToInt(live) != 0
	sessionKey, _ := node.Get("sessionKey")
	s.SessionKey = cast.ToInt(sessionKey)

	if users := node.ChildrenByTag("User"); len(users) > 0 {
		s.Username, _ = users[0].Get("title")
		id, _ := users[0].Get("id")
		s.UserID = cast.ToInt(id)
	}
}

// Reload re-queries the sessions listing and re-finds this entry by its
// session key. The object is left as-is when the session is no longer
// active.
func (s *SessionCore) Reload(ctx context.Context) error {
	data, err := s.base.srv.Query(ctx, s.base.initPath, MethodGet, nil, nil)
	if err != nil {
		return err
	}
	s.base.findAndLoad(data, filter.Filters{"sessionKey": strconv.Itoa(s.SessionKey)})
	return nil
}

// Player returns the client player element of the session, or nil.
// Memoized against the backing node.
func (s *SessionCore) Player() Item {
	return s.cachedChild("player", "Player")
}

// Session returns the bandwidth session element, or nil.
func (s *SessionCore) Session() Item {
	return s.cachedChild("session", "Session")
}

// TranscodeSession returns the transcode element when the item is being
// transcoded, or nil.
func (s *SessionCore) TranscodeSession() Item {
	return s.cachedChild("transcodeSession", "TranscodeSession")
}

func (s *SessionCore) cachedChild(cacheKey, tag string) Item {
	v := s.base.Cached(cacheKey, func() any {
		return s.base.FindItem(s.base.data, &FindOptions{Filters: filter.Filters{"etag": tag}})
	})
	item, _ := v.(Item)
	if item == nil {
		return nil
	}
	return item
}

// Source fetches the full library item this session is playing.
func (s *SessionCore) Source(ctx context.Context) (Item, error) {
	return s.base.FetchItem(ctx, s.base.detailsPath, nil)
}

// Stop terminates playback for the session. The reason is shown to the
// viewer.
func (s *SessionCore) Stop(ctx context.Context, reason string) error {
	session := s.Session()
	if session == nil {
		return errors.NewUnsupportedf("session %d has no session element to terminate", s.SessionKey)
	}
	id, _ := session.Base().Data().Get("id")

	params := url.Values{}
	params.Set("sessionId", id)
	params.Set("reason", reason)
	_, err := s.base.srv.Query(ctx, "/status/sessions/terminate", MethodGet, nil, params)
	return err
}
