// Package transport implements the HTTP client behind the object graph:
// request signing, rate limiting, response parsing, status mapping, and
// the websocket notification listener.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/teranos/mediagraph/config"
	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/logger"
	"github.com/teranos/mediagraph/object"
	"github.com/teranos/mediagraph/tree"
)

const (
	product        = "mediagraph"
	productVersion = "0.1.0"

	// The server throttles aggressive clients; stay under its limits.
	requestsPerSecond = 20
	requestBurst      = 40
)

// Client talks to one media server. It is the root of the object graph:
// fetches hang off it and every materialized item holds it as the Server
// collaborator.
//
// The zero value is not usable; construct with New.
type Client struct {
	object.Object

	httpClient *http.Client
	baseURL    *url.URL
	token      string
	identifier string
	limiter    *rate.Limiter

	pageSize   int
	autoReload bool

	// Populated from the server root on Connect.
	FriendlyName      string
	MachineIdentifier string
	Platform          string
	Version           *semver.Version
}

// New builds a client from configuration. No request is made; call
// Connect to populate the server identity fields.
func New(cfg *config.Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", cfg.BaseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.NewBadRequestf("base URL %q must be absolute", cfg.BaseURL)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		token:      cfg.Token,
		identifier: uuid.NewString(),
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		pageSize:   cfg.ContainerSize,
		autoReload: cfg.AutoReload,
	}
	object.Init(c, c, nil, "/", nil)
	return c, nil
}

// LoadData populates the server identity fields from the root response.
func (c *Client) LoadData(node *tree.Node) {
	c.LoadCommon(node)
	c.FriendlyName, _ = node.Get("friendlyName")
	c.MachineIdentifier, _ = node.Get("machineIdentifier")
	c.Platform, _ = node.Get("platform")
	if v, ok := node.Get("version"); ok {
		if parsed, err := semver.NewVersion(trimVersionBuild(v)); err == nil {
			c.Version = parsed
		} else {
			logger.Warnw("unparseable server version", "version", v, "error", err)
		}
	}
}

// Server version strings carry a build suffix after the fourth dot
// ("1.32.8.7639-fb6452ebf"); keep the semver-shaped prefix.
func trimVersionBuild(v string) string {
	parts := strings.SplitN(v, ".", 4)
	if len(parts) == 4 {
		return strings.Join(parts[:3], ".")
	}
	return v
}

// Connect fetches the server root and populates the identity fields.
func (c *Client) Connect(ctx context.Context) error {
	data, err := c.Query(ctx, "/", object.MethodGet, nil, nil)
	if err != nil {
		return errors.Wrap(err, "connecting to server")
	}
	c.LoadData(data)
	logger.Infow("connected",
		"name", c.FriendlyName,
		"machineIdentifier", c.MachineIdentifier,
		"version", c.Version)
	return nil
}

// RequireVersion fails with an unsupported-operation error when the
// connected server is older than min. Unknown server versions pass; the
// server will reject the request itself if it must.
func (c *Client) RequireVersion(min string) error {
	if c.Version == nil {
		return nil
	}
	constraint, err := semver.NewConstraint(">= " + min)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %q", min)
	}
	if !constraint.Check(c.Version) {
		return errors.NewUnsupportedf("server version %s is below the required %s", c.Version, min)
	}
	return nil
}

// BuildURL renders an absolute URL for the given path, optionally signed
// with the auth token. Used for stream and artwork URLs handed to
// external players.
func (c *Client) BuildURL(path string, includeToken bool) string {
	u := strings.TrimRight(c.baseURL.String(), "/") + path
	if includeToken && c.token != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		u += sep + "X-Plex-Token=" + url.QueryEscape(c.token)
	}
	return u
}

// DefaultPageSize implements object.Server.
func (c *Client) DefaultPageSize() int { return c.pageSize }

// AutoReload implements object.Server.
func (c *Client) AutoReload() bool { return c.autoReload }

// Query implements object.Server: one rate-limited request, parsed into
// an attribute tree. Error returns wrap the matching sentinel so callers
// can branch on response class.
func (c *Client) Query(ctx context.Context, path, method string, headers map[string]string, params url.Values) (*tree.Node, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	target := strings.TrimRight(c.baseURL.String(), "/") + path
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", path)
	}
	for k, v := range c.defaultHeaders() {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTransport, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debugw("query",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(started))

	if err := mapStatus(resp, method, path); err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent {
		return &tree.Node{Tag: object.EnvelopeTag}, nil
	}

	node, err := tree.Parse(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing response from %s", path)
	}
	return node, nil
}

func mapStatus(resp *http.Response, method, path string) error {
	if resp.StatusCode < 400 {
		return nil
	}
	detail := responseDetail(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return errors.Wrapf(errors.ErrNotFound, "%s %s", method, path)
	case http.StatusBadRequest:
		return errors.Wrapf(errors.ErrBadRequest, "%s %s: %s", method, path, detail)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.WithHint(
			errors.Wrapf(errors.ErrTransport, "%s %s: status %d", method, path, resp.StatusCode),
			"check the auth token")
	default:
		return errors.Wrapf(errors.ErrTransport, "%s %s: status %d: %s", method, path, resp.StatusCode, detail)
	}
}

// responseDetail extracts a short diagnostic from an error response body.
func responseDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) defaultHeaders() map[string]string {
	h := map[string]string{
		"Accept":                   "application/xml",
		"X-Plex-Product":           product,
		"X-Plex-Version":           productVersion,
		"X-Plex-Client-Identifier": c.identifier,
	}
	if c.token != "" {
		h["X-Plex-Token"] = c.token
	}
	return h
}

// ApplyEdits implements object.Server: one PUT against the items' library
// section applying the field mapping to every item at once.
func (c *Client) ApplyEdits(ctx context.Context, items []object.Item, fields map[string]string) error {
	if len(items) == 0 {
		return errors.NewBadRequestf("no items to edit")
	}
	if len(fields) == 0 {
		return nil
	}

	sectionID := items[0].Base().LibrarySectionID
	if sectionID == 0 {
		return errors.NewBadRequestf("cannot edit %s: unknown library section", items[0].Base())
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		o := item.Base()
		if o.Data() == nil {
			return errors.NewBadRequestf("cannot edit %s: no backing data", o)
		}
		id, ok := o.Data().Get("ratingKey")
		if !ok {
			return errors.NewBadRequestf("cannot edit %s: no ratingKey", o)
		}
		keys = append(keys, id)
	}

	params := url.Values{}
	params.Set("id", strings.Join(keys, ","))
	if typ, ok := items[0].Base().Data().Get("type"); ok {
		params.Set("type", typ)
	}
	for k, v := range fields {
		params.Set(k, v)
	}

	path := fmt.Sprintf("/library/sections/%d/all", sectionID)
	_, err := c.Query(ctx, path, object.MethodPut, nil, params)
	return err
}

// Sessions fetches the currently active playback sessions.
func (c *Client) Sessions(ctx context.Context) (*object.Container, error) {
	return c.FetchItems(ctx, "/status/sessions", nil)
}

// History fetches the play history, newest first.
func (c *Client) History(ctx context.Context, maxResults int) (*object.Container, error) {
	params := url.Values{}
	params.Set("sort", "viewedAt:desc")
	return c.FetchItems(ctx, "/status/sessions/history/all", &object.FetchOptions{
		MaxResults: maxResults,
		Params:     params,
	})
}

// Search runs a server-wide search and returns the matching items across
// all hubs.
func (c *Client) Search(ctx context.Context, query string) (*object.Container, error) {
	params := url.Values{}
	params.Set("query", query)
	data, err := c.Query(ctx, "/hubs/search", object.MethodGet, nil, params)
	if err != nil {
		return nil, err
	}

	results := c.FindItems(&tree.Node{Tag: object.EnvelopeTag}, &object.FindOptions{InitPath: "/hubs/search"})
	for _, hub := range data.ChildrenByTag("Hub") {
		results.Extend(c.FindItems(hub, &object.FindOptions{InitPath: "/hubs/search"}))
	}
	return results, nil
}

// Item fetches a single library item by its rating key.
func (c *Client) Item(ctx context.Context, ratingKey int) (object.Item, error) {
	return c.FetchItem(ctx, fmt.Sprintf("/library/metadata/%d", ratingKey), nil)
}
