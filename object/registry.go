package object

import (
	"strings"

	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/tree"
)

// Variant describes one concrete typed shape a response node can
// materialize into.
type Variant struct {
	// Tag is the canonical element tag for this variant, e.g. "Video".
	Tag string
	// Type is the value of the type-discriminating attribute, e.g.
	// "movie". Empty when the tag alone selects the variant.
	Type string
	// New builds an instance from a node. Constructors call Init (or
	// InitPartial) on the embedded base before returning.
	New func(srv Server, node *tree.Node, initPath string, parent Item) Item
}

// Key returns the registry dispatch key for this variant.
func (v *Variant) Key() string {
	if v.Type != "" {
		return v.Tag + "." + v.Type
	}
	return v.Tag
}

// registry maps dispatch keys to variants. Populated by explicit Register
// calls during process initialization (the media package does this in its
// init) and read-only afterwards.
var registry = map[string]*Variant{}

// Register adds a variant under its canonical dispatch key, with optional
// extra keys (listing-context suffixed keys, bare-tag fallbacks).
func Register(v *Variant, extraKeys ...string) {
	registry[v.Key()] = v
	for _, k := range extraKeys {
		registry[k] = v
	}
}

// Lookup returns the variant registered under the given dispatch key.
func Lookup(key string) (*Variant, bool) {
	v, ok := registry[key]
	return v, ok
}

// The type-discriminating attribute is carried under one of three names,
// tried in priority order.
var typeAttrs = [...]string{"streamType", "tagType", "type"}

const (
	sessionsPath = "/status/sessions"
	historyPath  = "/status/sessions/history"
)

// dispatchKey computes the registry key for a node fetched from initPath.
// Live-session and history listings share tags with their generic
// counterparts; the context path disambiguates them.
func dispatchKey(node *tree.Node, initPath string) string {
	var etype string
	for _, name := range typeAttrs {
		if v, ok := node.Attr[name]; ok && v != "" {
			etype = v
			break
		}
	}

	key := node.Tag
	if etype != "" {
		key = node.Tag + "." + etype
	}

	if initPath == sessionsPath {
		key += ".session"
	} else if strings.HasPrefix(initPath, historyPath) {
		key += ".history"
	}
	return key
}

// Build materializes a node into its registered variant. Falls back to a
// bare-tag registration when no discriminated entry exists, and fails with
// ErrUnknownVariant when neither lookup succeeds.
func Build(srv Server, node *tree.Node, initPath string, parent Item) (Item, error) {
	key := dispatchKey(node, initPath)
	v, ok := registry[key]
	if !ok {
		v, ok = registry[node.Tag]
	}
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownVariant,
			"no variant for <%s> (dispatch key %q)", node.Tag, key)
	}
	return v.New(srv, node, initPath, parent), nil
}

// BuildOrNil is Build for listing scans: unknown variants return nil
// instead of an error so mixed-content listings can skip them.
func BuildOrNil(srv Server, node *tree.Node, initPath string, parent Item) Item {
	item, err := Build(srv, node, initPath, parent)
	if err != nil {
		return nil
	}
	return item
}
