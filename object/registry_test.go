package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mediagraph/errors"
	"github.com/teranos/mediagraph/tree"
)

func TestDispatchKey(t *testing.T) {
	tests := []struct {
		name     string
		attrs    map[string]string
		tag      string
		initPath string
		want     string
	}{
		{"bare tag", nil, "Widget", "/widgets", "Widget"},
		{"type attr", map[string]string{"type": "gadget"}, "Widget", "/widgets", "Widget.gadget"},
		{"streamType beats type", map[string]string{"type": "gadget", "streamType": "2"}, "Stream", "/x", "Stream.2"},
		{"tagType beats type", map[string]string{"type": "gadget", "tagType": "ribbon"}, "Widget", "/x", "Widget.ribbon"},
		{"empty type ignored", map[string]string{"type": ""}, "Widget", "/x", "Widget"},
		{"sessions context", map[string]string{"type": "gadget"}, "Widget", "/status/sessions", "Widget.gadget.session"},
		{"history context", map[string]string{"type": "gadget"}, "Widget", "/status/sessions/history/all", "Widget.gadget.history"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &tree.Node{Tag: tt.tag, Attr: tt.attrs}
			assert.Equal(t, tt.want, dispatchKey(node, tt.initPath))
		})
	}
}

func TestBuildFallsBackToBareTag(t *testing.T) {
	srv := newFakeServer()
	node := mustNode(t, `<Widget type="unregistered-type" name="x" />`)

	item, err := Build(srv, node, "/widgets", nil)
	require.NoError(t, err)
	_, ok := item.(*widget)
	assert.True(t, ok)
}

func TestBuildUnknownVariant(t *testing.T) {
	srv := newFakeServer()
	node := mustNode(t, `<Mystery name="x" />`)

	_, err := Build(srv, node, "/widgets", nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnknownVariant(err))

	assert.Nil(t, BuildOrNil(srv, node, "/widgets", nil))
}
