package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nhu-hockey/nhu-app/internal/adapters/database/redis/documents"
)

// Client is the remote backend: the document collections shared by every device.
type Client struct {
	Documents *documents.Storage

	conn *redis.Client
}

type Options struct {
	Host      string
	Port      int
	Password  string
	DB        int
	Namespace string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping document storage: %w", err)
	}

	return &Client{
		Documents: documents.NewStorage(conn, opts.Namespace),
		conn:      conn,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
