// Package node is the JSON-RPC client for the remote node. Business
// semantics and the wire protocol live here, behind the dispatch engine.
package node

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	clierr "github.com/avafoundry/ava-cli/internal/errors"
	"github.com/avafoundry/ava-cli/internal/httpx"
)

// Service API endpoints exposed by the node.
const (
	EndpointAVM      = "/ext/bc/avm"
	EndpointKeystore = "/ext/keystore"
	EndpointPlatform = "/ext/P"
	EndpointAdmin    = "/ext/admin"
	EndpointHealth   = "/ext/health"
)

type Client struct {
	base string
	http *http.Client

	mu    sync.Mutex
	conns map[string]*rpc.Client
}

// New builds a client for the node at base (e.g. "http://127.0.0.1:9650").
// Connections per service endpoint are dialed lazily and reused.
func New(base string, timeout time.Duration, retries int) *Client {
	return &Client{
		base:  base,
		http:  httpx.New(timeout, retries),
		conns: make(map[string]*rpc.Client),
	}
}

func (c *Client) conn(ctx context.Context, endpoint string) (*rpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conn, ok := c.conns[endpoint]; ok {
		return conn, nil
	}
	conn, err := rpc.DialOptions(ctx, c.base+endpoint, rpc.WithHTTPClient(c.http))
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUnavailable, "dial node", err)
	}
	c.conns[endpoint] = conn
	return conn, nil
}

// Call issues one JSON-RPC request against a service endpoint.
func (c *Client) Call(ctx context.Context, endpoint, method string, params, result any) error {
	conn, err := c.conn(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := conn.CallContext(ctx, result, method, params); err != nil {
		return clierr.Wrap(clierr.CodeUnavailable, "node call "+method, err)
	}
	return nil
}

// CallRaw issues a request whose result shape is not known in advance, for
// commands described only by on-disk definition records.
func (c *Client) CallRaw(ctx context.Context, endpoint, method string, params map[string]any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, endpoint, method, params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, conn := range c.conns {
		conn.Close()
	}
	c.conns = make(map[string]*rpc.Client)
}
