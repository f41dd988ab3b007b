// Package amfi fetches mutual fund NAVs from the AMFI public feed.
package amfi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// maxRecords bounds how many schemes a single fetch returns.
const maxRecords = 100

// Record is one parsed NAV line.
type Record struct {
	SchemeCode string
	SchemeName string
	NAV        float64
}

// Client fetches and parses the AMFI NAVAll text feed.
type Client struct {
	rest *resty.Client
	url  string
	log  zerolog.Logger
}

// NewClient creates a new AMFI feed client.
func NewClient(url string, log zerolog.Logger) *Client {
	rest := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &Client{
		rest: rest,
		url:  url,
		log:  log.With().Str("client", "amfi").Logger(),
	}
}

// FetchNAV downloads the current NAV list.
func (c *Client) FetchNAV(ctx context.Context) ([]Record, error) {
	resp, err := c.rest.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch AMFI NAV feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("AMFI feed returned status %d", resp.StatusCode())
	}

	records := ParseNAV(resp.String())
	if len(records) == 0 {
		return nil, fmt.Errorf("AMFI feed contained no parseable NAV lines")
	}

	c.log.Info().Int("count", len(records)).Msg("Fetched AMFI NAV records")
	return records, nil
}

// ParseNAV parses the AMFI NAVAll text format:
//
//	Scheme Code;ISIN Div Payout/ISIN Growth;ISIN Div Reinvestment;Scheme Name;Net Asset Value;Date
//
// Header lines, section titles and malformed lines are skipped.
func ParseNAV(body string) []Record {
	var records []Record

	for _, line := range strings.Split(body, "\n") {
		parts := strings.Split(line, ";")
		if len(parts) < 5 {
			continue
		}

		code := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[3])
		nav, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
		if err != nil || nav <= 0 || name == "" {
			continue
		}
		if _, err := strconv.Atoi(code); err != nil {
			continue // header or section line
		}

		records = append(records, Record{
			SchemeCode: code,
			SchemeName: name,
			NAV:        nav,
		})

		if len(records) >= maxRecords {
			break
		}
	}

	return records
}
