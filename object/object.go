package object

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"weak"

	"github.com/spf13/cast"
	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/logger"
	"github.com/teranos/mediagraph/tree"
)

// Item is implemented by every materialized variant.
type Item interface {
	// Base returns the embedded Object carrying the shared lifecycle
	// state.
	Base() *Object

	// LoadData populates the variant's fields from the backing node. It
	// is invoked by this package at construction and after every
	// reload; variants implement it but do not call it directly.
	LoadData(node *tree.Node)
}

// Attributes that are legitimately absent and must never trigger an
// implicit reload.
var dontReloadAttrs = map[string]struct{}{
	"key":       {},
	"sourceURI": {},
}

// DontReloadFor adds attribute names to the implicit-reload exemption list.
// Process-wide; intended for embedder initialization, not concurrent use.
func DontReloadFor(names ...string) {
	for _, n := range names {
		dontReloadAttrs[n] = struct{}{}
	}
}

// Object is the base of every materialized variant. It tracks the backing
// node, the path the node was fetched from, the derived details path used
// for full reloads, and a non-owning reference to the enclosing object.
//
// Objects are not safe for concurrent mutation; callers that fan out
// concurrent reloads across the same instance must serialize them.
type Object struct {
	srv      Server
	item     Item
	data     *tree.Node
	initPath string
	parent   weak.Pointer[Object]

	// Key is the stable relative resource identifier. May be empty for
	// ephemeral objects (history and session entries).
	Key string

	// LibrarySectionID is stamped onto fetched items from the response
	// envelope. Zero when the envelope carried none.
	LibrarySectionID int

	detailsPath string

	// includes are query parameters enabled by default on the details
	// path; excludes are disabled by default and only appear when
	// explicitly overridden.
	includes map[string]string
	excludes map[string]string

	// overwriteNil is the population mode: when true a missing server
	// attribute clears the corresponding field, when false it leaves an
	// already-set field alone. False only during the implicit-reload
	// window so background reloads cannot clobber local edits.
	overwriteNil bool

	autoReload   bool
	reloadExempt bool

	// edits accumulates batch edits; nil outside batch mode.
	edits map[string]string

	cache map[string]any
}

// Init wires a freshly constructed variant to its backing node. node and
// parent may be nil; an empty initPath falls back to the object's own key
// once loaded.
func Init(item Item, srv Server, node *tree.Node, initPath string, parent Item) {
	o := item.Base()
	o.srv = srv
	o.item = item
	o.data = node
	o.initPath = initPath
	o.overwriteNil = true
	if srv != nil {
		o.autoReload = srv.AutoReload()
	}
	if parent != nil {
		o.parent = weak.Make(parent.Base())
	}
	if node != nil {
		item.LoadData(node)
	}
	if o.initPath == "" {
		o.initPath = o.Key
	}
	o.detailsPath = o.buildDetailsPath(nil)
}

// Base returns o; embedding variants satisfy Item through promotion.
func (o *Object) Base() *Object { return o }

// Server returns the collaborator this object fetches through.
func (o *Object) Server() Server { return o.srv }

// Data returns the backing node.
func (o *Object) Data() *tree.Node { return o.data }

// InitPath returns the path the backing node was fetched from.
func (o *Object) InitPath() string { return o.initPath }

// DetailsPath returns the derived path, including default include
// parameters, used for full reloads.
func (o *Object) DetailsPath() string { return o.detailsPath }

// Parent resolves the non-owning parent reference. Nil when the object has
// no parent or the parent has been collected; that is a valid outcome, not
// an error.
func (o *Object) Parent() *Object { return o.parent.Value() }

// SetAutoReload toggles implicit reload-on-access for this object.
func (o *Object) SetAutoReload(enabled bool) { o.autoReload = enabled }

// setIncludeParams declares the include/exclude parameter tables used to
// derive the details path. Called by variant bases before Init finishes.
func (o *Object) setIncludeParams(includes, excludes map[string]string) {
	o.includes = includes
	o.excludes = excludes
}

// markReloadExempt marks the object as unreloadable by nature (session and
// history entries, which cannot be independently re-fetched).
func (o *Object) markReloadExempt() { o.reloadExempt = true }

// String renders a short identity for logs: variant, first identifier,
// first title-ish attribute.
func (o *Object) String() string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", o.item), "*")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	parts := []string{name}
	if o.data != nil {
		if uid := firstAttr(o.data, "ratingKey", "id", "key", "playQueueID", "uri", "type"); uid != "" {
			parts = append(parts, cleanForDisplay(uid))
		}
		if title := firstAttr(o.data, "title", "name", "username", "product", "tag", "value"); title != "" {
			parts = append(parts, cleanForDisplay(title))
		}
	}
	return "<" + strings.Join(parts, ":") + ">"
}

func firstAttr(n *tree.Node, names ...string) string {
	for _, name := range names {
		if v, ok := n.Get(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func cleanForDisplay(value string) string {
	value = strings.ReplaceAll(value, "/library/metadata/", "")
	value = strings.ReplaceAll(value, "/children", "")
	value = strings.ReplaceAll(value, " ", "-")
	if len(value) > 20 {
		value = value[:20]
	}
	return value
}

// buildDetailsPath combines the object's key with the declared include
// parameters (on by default, disabled by a false/zero override) and exclude
// parameters (off by default, enabled by explicit override). Parameters are
// sorted by name for determinism.
func (o *Object) buildDetailsPath(overrides map[string]any) string {
	if o.Key == "" {
		return o.Key
	}

	params := url.Values{}
	for k, def := range o.includes {
		value := any(def)
		if ov, ok := overrides[k]; ok {
			value = ov
		}
		if s, enabled := paramValue(value); enabled {
			params.Set(k, s)
		}
	}
	for k := range o.excludes {
		ov, ok := overrides[k]
		if !ok || ov == nil {
			continue
		}
		if s, _ := paramValue(ov); s != "" {
			params.Set(k, s)
		}
	}

	if len(params) == 0 {
		return o.Key
	}
	return o.Key + "?" + encodeSorted(params)
}

// paramValue renders an include/exclude override. false, 0, and "0"
// disable the parameter; true renders as 1.
func paramValue(v any) (string, bool) {
	switch t := v.(type) {
	case bool:
		if !t {
			return "", false
		}
		return "1", true
	case int:
		if t == 0 {
			return "", false
		}
		return cast.ToString(t), true
	case string:
		if t == "" || t == "0" {
			return "", false
		}
		return t, true
	default:
		s := cast.ToString(v)
		return s, s != ""
	}
}

func encodeSorted(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(k)))
	}
	return b.String()
}

// Reload re-fetches the object from its details path and refreshes all
// fields. Overrides adjust individual include/exclude parameters for this
// reload and rebuild the cached details path.
func (o *Object) Reload(ctx context.Context, overrides map[string]any) error {
	return o.reload(ctx, "", true, overrides)
}

// ReloadFrom is Reload with an explicit path override.
func (o *Object) ReloadFrom(ctx context.Context, path string, overrides map[string]any) error {
	return o.reload(ctx, path, true, overrides)
}

func (o *Object) reload(ctx context.Context, path string, overwriteNil bool, overrides map[string]any) error {
	if o.reloadExempt {
		return errors.NewUnsupportedf("%s entries cannot be reloaded; fetch the source item instead", o)
	}
	if len(overrides) > 0 {
		o.detailsPath = o.buildDetailsPath(overrides)
	}
	if path == "" {
		path = o.detailsPath
	}
	if path == "" {
		path = o.Key
	}
	if path == "" {
		return errors.NewUnsupportedf("cannot reload an object not built from a URL")
	}

	o.initPath = path
	root, err := o.srv.Query(ctx, path, MethodGet, nil, nil)
	if err != nil {
		return err
	}
	node := root.FirstChild()
	if node == nil {
		return errors.NewNotFoundf("reload of %s returned an empty container", path)
	}

	o.overwriteNil = overwriteNil
	o.invalidateCacheAndLoad(node)
	o.overwriteNil = true
	return nil
}

// invalidateCacheAndLoad replaces the backing node and re-runs field
// population. Memoized derived values are cleared only when the new node is
// a different instance; reloading a listing that hands back the same node
// is a no-op for the cache.
func (o *Object) invalidateCacheAndLoad(node *tree.Node) {
	if node != o.data {
		o.cache = nil
	}
	o.data = node
	o.item.LoadData(node)
}

// findAndLoad locates the first child of data matching the filters and
// loads it as this object's new backing node. Used by session reloads,
// where the entry can only be re-found inside the listing.
func (o *Object) findAndLoad(data *tree.Node, filters map[string]any) {
	for _, elem := range data.Children {
		if matchFilters(elem, filters) {
			o.invalidateCacheAndLoad(elem)
			return
		}
	}
}

// Cached memoizes a value derived from the backing node. The memo is
// dropped when a reload swaps in a different node instance.
func (o *Object) Cached(name string, compute func() any) any {
	if v, ok := o.cache[name]; ok {
		return v
	}
	if o.cache == nil {
		o.cache = map[string]any{}
	}
	v := compute()
	o.cache[name] = v
	return v
}

// IsChildOf walks the parent chain and reports whether any ancestor's
// backing node matches the filters. The walk stops at the first match or
// when the chain resolves to nothing.
func (o *Object) IsChildOf(filters map[string]any) bool {
	for obj := o.Parent(); obj != nil; obj = obj.Parent() {
		if obj.data != nil && matchFilters(obj.data, filters) {
			return true
		}
	}
	return false
}

// Attr returns the named attribute from the backing node. On a partial
// object a missing public attribute triggers one implicit reload before
// giving up; see PartialObject for the exemptions.
func (o *Object) Attr(ctx context.Context, name string) (string, error) {
	if o.data != nil {
		// Present-but-empty is a real value; only genuine absence
		// triggers a reload.
		if v, ok := o.data.Get(name); ok {
			return v, nil
		}
	}
	if !o.shouldReloadFor(name) {
		return "", nil
	}

	logger.Debugw("reloading for missing attribute", "object", o.String(), "attr", name)
	if err := o.reload(ctx, "", false, nil); err != nil {
		return "", err
	}
	if v, ok := o.data.Get(name); ok {
		return v, nil
	}
	return "", nil
}

// AttrInt is Attr coerced to int. Absent or uncoercible values yield zero.
func (o *Object) AttrInt(ctx context.Context, name string) (int, error) {
	v, err := o.Attr(ctx, name)
	if err != nil {
		return 0, err
	}
	return cast.ToInt(v), nil
}

// AttrBool is Attr coerced to bool via integer parsing.
func (o *Object) AttrBool(ctx context.Context, name string) (bool, error) {
	v, err := o.Attr(ctx, name)
	if err != nil {
		return false, err
	}
	return cast.ToInt(v) != 0, nil
}

// shouldReloadFor gates the implicit reload: exempted attribute names,
// unreloadable variants, disabled auto-reload, and already-full objects
// never reload.
func (o *Object) shouldReloadFor(name string) bool {
	if _, exempt := dontReloadAttrs[name]; exempt {
		return false
	}
	if o.reloadExempt || !o.autoReload {
		return false
	}
	return !o.IsFullObject()
}

// IsFullObject reports whether the backing node came from a response that
// requested all default include parameters: the details path and the
// constructing path share a resource path and every details query
// parameter is present on the constructing path. Derived purely from the
// two paths, so it is always consistent with the most recent reload.
func (o *Object) IsFullObject() bool {
	if o.Key == "" {
		return true
	}
	details := o.detailsPath
	if details == "" {
		details = o.Key
	}
	dURL, err1 := url.Parse(details)
	iURL, err2 := url.Parse(o.initPath)
	if err1 != nil || err2 != nil {
		return false
	}
	if dURL.Path != iURL.Path {
		return false
	}
	initQuery := iURL.Query()
	for k, vals := range dURL.Query() {
		for _, v := range vals {
			if !containsValue(initQuery[k], v) {
				return false
			}
		}
	}
	return true
}

// IsPartialObject reports whether this is not a full object.
func (o *Object) IsPartialObject() bool {
	return !o.IsFullObject()
}

func containsValue(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// SetString assigns a node attribute into a pointer-typed field. A present
// attribute always assigns; a missing one clears the field only in the
// permissive population mode.
func (o *Object) SetString(dst **string, node *tree.Node, name string) {
	if v, ok := node.Get(name); ok {
		*dst = &v
		return
	}
	if o.overwriteNil {
		*dst = nil
	}
}

func (o *Object) SetInt(dst **int, node *tree.Node, name string) {
	if v, ok := node.Get(name); ok {
		if i, err := cast.ToIntE(v); err == nil {
			*dst = &i
			return
		}
	}
	if o.overwriteNil {
		*dst = nil
	}
}

func (o *Object) SetBool(dst **bool, node *tree.Node, name string) {
	if v, ok := node.Get(name); ok {
		if i, err := cast.ToIntE(v); err == nil {
			b := i != 0
			*dst = &b
			return
		}
	}
	if o.overwriteNil {
		*dst = nil
	}
}

// LoadCommon populates the shared lifecycle attributes; variant LoadData
// implementations call it first.
func (o *Object) LoadCommon(node *tree.Node) {
	if v, ok := node.Get("key"); ok && v != "" {
		o.Key = v
	}
	if v, ok := node.Get("librarySectionID"); ok {
		o.LibrarySectionID = cast.ToInt(v)
	}
}
