// Package rates fetches reference exchange rates from a central-bank XML
// feed. The engine keeps every ledger amount in RWF; the rate is served to
// the dashboard for informational display only.
package rates

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/mukizafabrice/Unguka-sub001/internal/config"
)

// Client handles integration with the exchange-rate feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client. Returns nil when no feed URL is
// configured.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	if cfg.RatesURL == "" {
		return nil
	}
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// GetRate retrieves the current RWF reference rate for the given currency.
func (c *Client) GetRate(currency string) (float64, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return 0, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read rates response: %w", err)
	}
	c.log.Debugf("rates XML response: %s", string(body))

	rate, err := ParseReferenceRate(body, currency)
	if err != nil {
		return 0, err
	}

	c.log.Infof("Retrieved reference rate: 1 %s = %.2f RWF", currency, rate)
	return rate, nil
}

// ParseReferenceRate extracts the RWF rate for a currency from the feed's
// XML body. The feed lists one <rate currency="XXX">value</rate> element
// per currency under the document root.
func ParseReferenceRate(rawBody []byte, currency string) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse rates XML: %w", err)
	}

	for _, el := range doc.FindElements("//rate") {
		if el.SelectAttrValue("currency", "") != currency {
			continue
		}
		rate, err := strconv.ParseFloat(el.Text(), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse rate value %q: %w", el.Text(), err)
		}
		if rate <= 0 {
			return 0, fmt.Errorf("non-positive rate for %s: %f", currency, rate)
		}
		return rate, nil
	}
	return 0, fmt.Errorf("no rate found for currency %s", currency)
}
