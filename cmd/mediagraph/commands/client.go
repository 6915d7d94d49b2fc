package commands

import (
	"context"

	"github.com/teranos/mediagraph/config"
	"github.com/teranos/mediagraph/errors"
	_ "github.com/teranos/mediagraph/media"
	"github.com/teranos/mediagraph/transport"
)

// connect loads configuration and returns a connected client.
func connect(ctx context.Context) (*transport.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading configuration")
	}

	client, err := transport.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}
