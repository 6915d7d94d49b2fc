package object

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spf13/cast"
	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/filter"
	"github.com/teranos/mediagraph/logger"
	"github.com/teranos/mediagraph/tree"
)

// FindOptions steer how a response node is scanned for items.
type FindOptions struct {
	// Variant builds every match as this variant and injects its
	// canonical etag/type filters unless the caller provided their own.
	Variant *Variant
	// RootTag descends breadth-first to the nearest matching descendant
	// before scanning, for envelopes that wrap the listing under an
	// intermediate tag.
	RootTag string
	// InitPath overrides the context path recorded on built items.
	InitPath string
	// Filters select which child nodes materialize.
	Filters filter.Filters
}

// FetchOptions steer a paginated fetch.
type FetchOptions struct {
	FindOptions

	// Start is the container offset of the first page.
	Start int
	// Size is the page size; zero uses the server's default.
	Size int
	// MaxResults caps the total number of returned items; zero means
	// unlimited.
	MaxResults int
	// Params are extra query parameters added to every page request.
	Params url.Values
}

func matchFilters(n *tree.Node, filters map[string]any) bool {
	return filter.Match(n, filter.Filters(filters))
}

// effectiveFilters copies the caller's filters and injects the variant's
// canonical tag/type predicates so callers get the expected subset without
// boilerplate.
func (opt *FindOptions) effectiveFilters() filter.Filters {
	filters := filter.Filters{}
	for k, v := range opt.Filters {
		filters[k] = v
	}
	if opt.Variant != nil {
		if opt.Variant.Tag != "" {
			if _, ok := filters["etag"]; !ok {
				filters["etag"] = opt.Variant.Tag
			}
		}
		if opt.Variant.Type != "" {
			if _, ok := filters["type"]; !ok {
				filters["type"] = opt.Variant.Type
			}
		}
	}
	return filters
}

// FindItems scans the direct children of data (after an optional RootTag
// descent), materializes every child matching the filters, and silently
// drops nodes of unknown variant. When data is a paginated envelope the
// returned container is seeded with its metadata.
func (o *Object) FindItems(data *tree.Node, opt *FindOptions) *Container {
	if opt == nil {
		opt = &FindOptions{}
	}
	filters := opt.effectiveFilters()

	if opt.RootTag != "" {
		if descended := data.BFS(opt.RootTag); descended != nil {
			data = descended
		} else {
			data = &tree.Node{Tag: "Empty"}
		}
	}

	initPath := opt.InitPath
	if initPath == "" {
		initPath = o.initPath
	}

	var results *Container
	if data.Tag == EnvelopeTag {
		results = NewContainer(o.srv, data, initPath)
	} else {
		results = newEmptyContainer(o.srv, initPath)
	}

	for _, elem := range data.Children {
		if !filter.Match(elem, filters) {
			continue
		}
		var item Item
		if opt.Variant != nil {
			item = opt.Variant.New(o.srv, elem, initPath, o.item)
		} else {
			item = BuildOrNil(o.srv, elem, initPath, o.item)
		}
		if item != nil {
			results.Append(item)
		}
	}
	return results
}

// FindItem returns the first matching item, or nil when nothing matches.
// Absence is a valid outcome here, not an error.
func (o *Object) FindItem(data *tree.Node, opt *FindOptions) Item {
	return o.FindItems(data, opt).First()
}

// ListAttrs collects the values of the named attribute from every matching
// child of data.
func (o *Object) ListAttrs(data *tree.Node, attr string, opt *FindOptions) []string {
	if opt == nil {
		opt = &FindOptions{}
	}
	filters := filter.Filters{}
	for k, v := range opt.Filters {
		filters[k] = v
	}
	filters[attr+filter.Delimiter+"exists"] = true

	if opt.RootTag != "" {
		if descended := data.BFS(opt.RootTag); descended != nil {
			data = descended
		} else {
			return nil
		}
	}

	var results []string
	for _, elem := range data.Children {
		if filter.Match(elem, filters) {
			if v, ok := elem.Get(attr); ok {
				results = append(results, v)
			}
		}
	}
	return results
}

// FetchItems loads the given path page by page, filters and materializes
// each response, and merges everything into a single container. A failed
// page fetch aborts the whole call; accumulated results are discarded.
func (o *Object) FetchItems(ctx context.Context, path string, opt *FetchOptions) (*Container, error) {
	if path == "" {
		return nil, errors.NewBadRequestf("fetch path was not provided")
	}
	if opt == nil {
		opt = &FetchOptions{}
	}

	start := opt.Start
	size := opt.Size
	if size <= 0 {
		size = o.srv.DefaultPageSize()
	}
	offset := start

	if opt.MaxResults > 0 && size > opt.MaxResults {
		size = opt.MaxResults
	}

	findOpt := opt.FindOptions
	findOpt.InitPath = path

	results := newEmptyContainer(o.srv, path)
	headers := map[string]string{}

	for {
		headers[HeaderContainerStart] = strconv.Itoa(start)
		headers[HeaderContainerSize] = strconv.Itoa(size)

		data, err := o.srv.Query(ctx, path, MethodGet, headers, opt.Params)
		if err != nil {
			return nil, err
		}

		page := o.FindItems(data, &findOpt)

		totalSize := cast.ToInt(firstAttr(data, "totalSize", "size"))
		if totalSize == 0 {
			totalSize = page.Len()
		}

		if page.Len() == 0 && offset > totalSize {
			logger.Debugw("container start is beyond the number of items",
				"path", path, "offset", offset, "totalSize", totalSize)
		}

		if id := cast.ToInt(firstAttr(data, "librarySectionID")); id != 0 {
			for _, item := range page.Items() {
				item.Base().LibrarySectionID = id
			}
		}

		results.Extend(page)

		start += size

		if start > totalSize {
			break
		}

		wanted := totalSize - offset
		if opt.MaxResults > 0 {
			if wanted > opt.MaxResults {
				wanted = opt.MaxResults
			}
			if remaining := wanted - results.Len(); size > remaining {
				size = remaining
			}
		}

		if wanted <= results.Len() {
			break
		}
	}

	return results, nil
}

// FetchItem is FetchItems restricted to the first result, failing with a
// not-found error naming the variant and filters when nothing matched.
func (o *Object) FetchItem(ctx context.Context, path string, opt *FetchOptions) (Item, error) {
	results, err := o.FetchItems(ctx, path, opt)
	if err != nil {
		return nil, err
	}
	if first := results.First(); first != nil {
		return first, nil
	}

	variantName := "any"
	var filters filter.Filters
	if opt != nil {
		if opt.Variant != nil {
			variantName = opt.Variant.Key()
		}
		filters = opt.Filters
	}
	return nil, errors.NewNotFoundf("unable to find elem: cls=%s, attrs=%v", variantName, filters)
}
