// Package catalog queries the SIMBAD astronomical database over its TAP
// endpoint. Results come back as CSV tables; failures are folded into the
// table itself as a single Error or Warning row so callers can render them
// the same way as data.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rbrederode/odt/infra/logger"
)

// DefaultTAPURL is the public SIMBAD TAP sync endpoint.
const DefaultTAPURL = "https://simbad.u-strasbg.fr/simbad/sim-tap/sync"

// Config holds the catalog client settings.
type Config struct {
	TAPURL   string `koanf:"tap_url" json:"tap_url"`
	Timeout  int    `koanf:"timeout_seconds" json:"timeout_seconds"`
	RowLimit int    `koanf:"row_limit" json:"row_limit"`
}

// SetDefaults fills unset fields with sensible values.
func (c *Config) SetDefaults() {
	if c.TAPURL == "" {
		c.TAPURL = DefaultTAPURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30
	}
	if c.RowLimit <= 0 {
		c.RowLimit = 20
	}
}

// Client runs synchronous ADQL queries against a TAP service.
type Client struct {
	client   *http.Client
	log      logger.Logger
	tapURL   string
	rowLimit int
}

// New creates a catalog client for the given configuration.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		client:   &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		log:      logger.New("catalog"),
		tapURL:   cfg.TAPURL,
		rowLimit: cfg.RowLimit,
	}
}

// Query runs an ADQL query and returns the result as rows of strings, header
// row first. Transport or service failures never return an error; they come
// back as a one-row table tagged Error or Warning.
func (c *Client) Query(ctx context.Context, adql string) [][]string {
	form := url.Values{}
	form.Set("REQUEST", "doQuery")
	form.Set("LANG", "ADQL")
	form.Set("FORMAT", "csv")
	form.Set("QUERY", adql)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tapURL, strings.NewReader(form.Encode()))
	if err != nil {
		return [][]string{{"Error", err.Error()}}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warnf("tap query failed: %v", err)
		return [][]string{{"Error", err.Error()}}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		c.log.Warnf("tap query returned %d", resp.StatusCode)
		return [][]string{{"Error", fmt.Sprintf("tap service returned %d", resp.StatusCode)}}
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return [][]string{{"Error", fmt.Sprintf("malformed csv: %v", err)}}
	}
	if len(rows) <= 1 {
		return [][]string{{"Warning", "query matched no objects"}}
	}
	return rows
}

// BrightestStars returns the brightest catalogued stars above the given
// declination limit, ordered by visual magnitude.
func (c *Client) BrightestStars(ctx context.Context, minDec float64, limit int) [][]string {
	if limit <= 0 {
		limit = c.rowLimit
	}
	adql := fmt.Sprintf(
		"SELECT TOP %d main_id, ra, dec, flux FROM basic JOIN flux ON oidref = oid "+
			"WHERE filter = 'V' AND dec > %f AND flux < 3 ORDER BY flux ASC", limit, minDec)
	return c.Query(ctx, adql)
}

// ResolveObject looks up a single object by identifier and returns its ICRS
// position.
func (c *Client) ResolveObject(ctx context.Context, name string) [][]string {
	adql := fmt.Sprintf(
		"SELECT main_id, ra, dec FROM basic WHERE main_id = '%s'",
		strings.ReplaceAll(name, "'", "''"))
	return c.Query(ctx, adql)
}
