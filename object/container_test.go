package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mediagraph/tree"
)

func containerFrom(t *testing.T, srv Server, body string) *Container {
	t.Helper()
	data, err := tree.ParseString(body)
	require.NoError(t, err)
	c := NewContainer(srv, data, "/widgets")
	for _, elem := range data.Children {
		if item := BuildOrNil(srv, elem, "/widgets", nil); item != nil {
			c.Append(item)
		}
	}
	return c
}

func TestContainerMetadata(t *testing.T) {
	srv := newFakeServer()
	c := containerFrom(t, srv,
		`<MediaContainer size="2" totalSize="10" offset="0" identifier="com.example.widgets" librarySectionID="3">
  <Widget type="gadget" name="a" />
  <Widget type="gadget" name="b" />
</MediaContainer>`)

	assert.Equal(t, 2, c.Len())
	require.NotNil(t, c.Size)
	assert.Equal(t, 2, *c.Size)
	require.NotNil(t, c.TotalSize)
	assert.Equal(t, 10, *c.TotalSize)
	require.NotNil(t, c.Identifier)
	assert.Equal(t, "com.example.widgets", *c.Identifier)
	require.NotNil(t, c.LibrarySectionID)
	assert.Equal(t, 3, *c.LibrarySectionID)
}

func TestExtendMergesPages(t *testing.T) {
	srv := newFakeServer()
	first := containerFrom(t, srv,
		`<MediaContainer size="2" totalSize="10" offset="0" identifier="one">
  <Widget type="gadget" name="a" />
  <Widget type="gadget" name="b" />
</MediaContainer>`)
	second := containerFrom(t, srv,
		`<MediaContainer size="2" totalSize="12" offset="2" identifier="two">
  <Widget type="gadget" name="c" />
  <Widget type="gadget" name="d" />
</MediaContainer>`)

	first.Extend(second)

	assert.Equal(t, 4, first.Len())
	assert.Equal(t, "a", *first.Item(0).(*widget).Name)
	assert.Equal(t, "d", *first.Item(3).(*widget).Name)

	// Newer total, added sizes, older offset, first-write provenance.
	assert.Equal(t, 12, *first.TotalSize)
	assert.Equal(t, 4, *first.Size)
	assert.Equal(t, 0, *first.Offset)
	assert.Equal(t, "one", *first.Identifier)
}

func TestExtendFillsUnsetMetadata(t *testing.T) {
	srv := newFakeServer()
	first := newEmptyContainer(srv, "/widgets")
	second := containerFrom(t, srv,
		`<MediaContainer size="1" totalSize="1" offset="5" identifier="late" mediaTagPrefix="/system/bundle/media/flags/">
  <Widget type="gadget" name="a" />
</MediaContainer>`)

	first.Extend(second)

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 1, *first.Size)
	assert.Equal(t, 5, *first.Offset)
	assert.Equal(t, "late", *first.Identifier)
	assert.Equal(t, "/system/bundle/media/flags/", *first.MediaTagPrefix)
}

func TestExtendSizeFallsBackToLength(t *testing.T) {
	srv := newFakeServer()
	first := newEmptyContainer(srv, "/widgets")
	first.Append(BuildOrNil(srv, mustNode(t, `<Widget type="gadget" name="a" />`), "/widgets", nil))

	second := newEmptyContainer(srv, "/widgets")
	second.Append(BuildOrNil(srv, mustNode(t, `<Widget type="gadget" name="b" />`), "/widgets", nil))

	first.Extend(second)
	require.NotNil(t, first.Size)
	assert.Equal(t, 2, *first.Size)
	assert.Nil(t, first.TotalSize)
}

func mustNode(t *testing.T, body string) *tree.Node {
	t.Helper()
	n, err := tree.ParseString(body)
	require.NoError(t, err)
	return n
}
