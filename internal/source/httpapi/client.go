// Package httpapi fetches the transaction dataset from the upstream JSON
// API. The whole list arrives in one GET; there are no server-side
// filter or pagination parameters.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lenta/internal/core"
	"lenta/internal/source"
)

const defaultTimeout = 15 * time.Second

// maxBodyBytes caps the response we are willing to decode (32 MiB).
const maxBodyBytes = 32 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the upstream API. baseURL is the service root;
// the transactions path is appended.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ListTransactions implements source.TransactionLister. Any failure
// (dial, non-200 status, undecodable body) comes back as a
// TransportError; the caller shows an error panel, never partial data.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	url := c.baseURL + "/api/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, source.Transport("build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, source.Transport("fetch transactions", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, source.Transport("fetch transactions",
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, source.Transport("read response", err)
	}

	var items []core.Transaction
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, source.Transport("decode transactions", err)
	}
	return items, nil
}

var _ source.TransactionLister = (*Client)(nil)
