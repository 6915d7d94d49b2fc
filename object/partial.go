package object

import (
	"context"

	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/logger"
	"github.com/teranos/mediagraph/tree"
)

// Default include parameters requested on every full reload. Enabled
// entries render as 1; string values pass through. Disabled entries ("0")
// are declared so callers can switch them on per reload.
func defaultIncludes() map[string]string {
	return map[string]string{
		"checkFiles":           "0",
		"includeAllConcerts":   "0",
		"includeBandwidths":    "1",
		"includeChapters":      "1",
		"includeChildren":      "0",
		"includeConcerts":      "0",
		"includeExternalMedia": "0",
		"includeExtras":        "0",
		"includeFields":        "thumbBlurHash,artBlurHash",
		"includeGeolocation":   "1",
		"includeLoudnessRamps": "1",
		"includeMarkers":       "1",
		"includeOnDeck":        "0",
		"includePopularLeaves": "0",
		"includePreferences":   "0",
		"includeRelated":       "0",
		"includeRelatedCount":  "0",
		"includeReviews":       "0",
		"includeStations":      "0",
	}
}

// Exclude parameters are off by default and only appear on the details
// path when explicitly overridden at reload time.
func defaultExcludes() map[string]string {
	return map[string]string{
		"excludeElements": "Media,Genre,Country,Guid,Rating,Collection,Director,Writer,Role,Producer,Similar,Style,Mood,Format",
		"excludeFields":   "summary,tagline",
		"skipRefresh":     "1",
	}
}

// PartialObject is the base for variants whose listings may return an
// incomplete set of attributes. It lets callers treat every object as
// complete: a missing attribute access fetches the full object
// automatically (see Object.Attr), and the edit protocol batches field
// updates into single server calls.
type PartialObject struct {
	Object
}

// InitPartial wires a partial variant: the default include/exclude tables
// are installed before the base Init derives the details path.
func InitPartial(item Item, srv Server, node *tree.Node, initPath string, parent Item) {
	o := item.Base()
	o.setIncludeParams(defaultIncludes(), defaultExcludes())
	Init(item, srv, node, initPath, parent)
}

// Equal reports key equality: multiple instances materialized from
// distinct fetches are equal when they name the same remote entity.
func (o *PartialObject) Equal(other Item) bool {
	if other == nil {
		return false
	}
	return o.Key != "" && o.Key == other.Base().Key
}

// Edit applies field edits. In batch mode the fields accumulate for one
// combined call on SaveEdits; otherwise they apply immediately through the
// edit sink.
func (o *PartialObject) Edit(ctx context.Context, fields map[string]string) error {
	if o.edits != nil {
		for k, v := range fields {
			o.edits[k] = v
		}
		return nil
	}
	return o.srv.ApplyEdits(ctx, []Item{o.item}, fields)
}

// BatchEdits enables batch edit mode. SaveEdits must be called to apply.
func (o *PartialObject) BatchEdits() {
	o.edits = map[string]string{}
}

// SaveEdits applies all accumulated batch edits in a single call. The
// object is not reloaded automatically.
func (o *PartialObject) SaveEdits(ctx context.Context) error {
	if o.edits == nil {
		return errors.NewBadRequestf("batch editing mode not enabled; call BatchEdits() first")
	}
	edits := o.edits
	o.edits = nil
	return o.srv.ApplyEdits(ctx, []Item{o.item}, edits)
}

// Delete removes the item on the server. A bad-request response usually
// means item deletion is disabled in the server's library settings; noted
// and re-raised.
func (o *PartialObject) Delete(ctx context.Context) error {
	_, err := o.srv.Query(ctx, o.Key, MethodDelete, nil, nil)
	if err != nil && errors.IsBadRequest(err) {
		logger.Errorf("failed to delete %s; the server may not allow items to be deleted", o.Key)
	}
	return err
}

// Refresh asks the server to re-gather metadata for the item even if it
// already has some.
func (o *PartialObject) Refresh(ctx context.Context) error {
	_, err := o.srv.Query(ctx, o.Key+"/refresh", MethodPut, nil, nil)
	return err
}

// Analyze asks the server to analyze the item's media (properties,
// artwork, preview thumbnails).
func (o *PartialObject) Analyze(ctx context.Context) error {
	_, err := o.srv.Query(ctx, "/"+trimLeadingSlash(o.Key)+"/analyze", MethodPut, nil, nil)
	return err
}

func trimLeadingSlash(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s
}
