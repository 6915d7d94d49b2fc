// Package object implements the typed object graph materialized from server
// attribute-tree responses: variant dispatch, lazy field population with
// reload-on-access, result containers, and paginated fetching.
package object

import (
	"context"
	"net/url"

	"github.com/teranos/mediagraph/tree"
)

// HTTP-ish methods the core asks the transport to perform. The transport
// owns retries, auth, and TLS.
const (
	MethodGet    = "GET"
	MethodPut    = "PUT"
	MethodPost   = "POST"
	MethodDelete = "DELETE"
)

// Pagination header names the transport forwards to the server.
const (
	HeaderContainerStart = "X-Plex-Container-Start"
	HeaderContainerSize  = "X-Plex-Container-Size"
)

// Server is the collaborator boundary the object graph core needs: a
// transport for attribute-tree queries, an edit sink, and two client knobs.
// Implementations must return an error wrapping errors.ErrNotFound for
// 404-equivalent responses.
type Server interface {
	// Query performs a request against the server and parses the
	// response into an attribute tree.
	Query(ctx context.Context, path string, method string, headers map[string]string, params url.Values) (*tree.Node, error)

	// ApplyEdits applies a field mapping to the given items in one call.
	// Field keys follow the server's dotted convention
	// (field.value, field.locked, tagField[0].tag.tag) and are
	// interpreted by the implementation, not by this package.
	ApplyEdits(ctx context.Context, items []Item, fields map[string]string) error

	// DefaultPageSize is the container page size used when a fetch does
	// not specify one.
	DefaultPageSize() int

	// AutoReload reports whether partial objects reload implicitly when
	// a missing attribute is accessed.
	AutoReload() bool
}
