package object

import (
	"context"
	"time"

	"github.com/spf13/cast"
	"github.com/teranos/mediagraph/tree"
)

// HistoryCore is embedded by play-history variants. History entries are
// ephemeral records: they cannot be reloaded (Object.Reload fails with an
// unsupported-operation error) and never reload implicitly; Source
// resolves the underlying library item instead.
type HistoryCore struct {
	base *Object

	// AccountID is the system account that watched the item.
	AccountID int
	// DeviceID is the system device the item was watched on.
	DeviceID int
	// HistoryKey is the API path of this history entry.
	HistoryKey string
	// ViewedAt is when the item was watched.
	ViewedAt time.Time
}

// History is satisfied by every history-context variant; Record gives
// callers the shared watch-record state without caring which item shape
// was watched.
type History interface {
	Item
	Record() *HistoryCore
}

// Record returns the shared watch-record state; embedding variants
// satisfy History through promotion.
func (h *HistoryCore) Record() *HistoryCore { return h }

// InitHistory populates the history attributes and exempts the object from
// reloads. Variants call it from LoadData.
func (h *HistoryCore) InitHistory(item Item, node *tree.Node) {
	o := item.Base()
	h.base = o
	o.markReloadExempt()

	accountID, _ := node.Get("accountID")
	h.AccountID = cast.ToInt(accountID)
	deviceID, _ := node.Get("deviceID")
	h.DeviceID = cast.ToInt(deviceID)
	h.HistoryKey, _ = node.Get("historyKey")
	if v, ok := node.Get("viewedAt"); ok {
		h.ViewedAt = time.Unix(cast.ToInt64(v), 0)
	}
}

// Source fetches the library item this history entry refers to, or nil
// when the media no longer exists on the server.
func (h *HistoryCore) Source(ctx context.Context) (Item, error) {
	if h.base.detailsPath == "" {
		return nil, nil
	}
	item, err := h.base.FetchItem(ctx, h.base.detailsPath, nil)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the history entry.
func (h *HistoryCore) Delete(ctx context.Context) error {
	_, err := h.base.srv.Query(ctx, h.HistoryKey, MethodDelete, nil, nil)
	return err
}
