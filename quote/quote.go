// Package quote fetches security prices from a JSON HTTP endpoint and
// serves them as a price source for brokerage accounts.
package quote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/averlon/brokerage"
	"github.com/shopspring/decimal"
)

// DefaultPath is the jsonpath where the quote value is read from the
// response when the client does not set one.
const DefaultPath = "$.price"

// Client reads quotes from an HTTP endpoint returning JSON and
// implements brokerage.PriceSource, so it plugs directly into
// Account.SetPriceSource.
//
// A quote request is a GET on BaseURL with the normalized symbol added
// as the "symbol" query parameter; the price is read from the response
// at Path.
type Client struct {
	// BaseURL is the quote endpoint, e.g. "https://quotes.example.com/last".
	BaseURL string
	// Path is the jsonpath to the price in the response. Empty means
	// DefaultPath.
	Path string
	// HTTP is the client used for requests. Nil means http.DefaultClient.
	HTTP *http.Client
}

// New returns a Client on the given endpoint with the default path and
// an HTTP client that caches responses for DefaultTTL.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: NewCachingClient(DefaultTTL)}
}

// PriceFor fetches the current unit price for symbol.
func (c *Client) PriceFor(symbol string) (brokerage.Money, error) {
	sym, err := brokerage.NormalizeSymbol(symbol)
	if err != nil {
		return brokerage.Money{}, err
	}

	var jobj any
	if err := jwget(c.client(), c.quoteURL(sym), &jobj); err != nil {
		return brokerage.Money{}, fmt.Errorf("error retrieving %q: %w", sym, err)
	}

	path := c.Path
	if path == "" {
		path = DefaultPath
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return brokerage.Money{}, fmt.Errorf("%w: %s has no value at %q: %v", brokerage.ErrPriceUnavailable, sym, path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	px, err := parseQuote(jval)
	if err != nil {
		return brokerage.Money{}, fmt.Errorf("%w: %s: %v", brokerage.ErrPriceUnavailable, sym, err)
	}
	if !px.IsPositive() {
		return brokerage.Money{}, fmt.Errorf("%w: empty quote %s for %s", brokerage.ErrPriceUnavailable, px, sym)
	}
	return px, nil
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// quoteURL appends the symbol query parameter to the endpoint. The
// symbol is already normalized to [A-Z0-9.-], so it needs no escaping.
func (c *Client) quoteURL(sym string) string {
	sep := "?"
	if strings.Contains(c.BaseURL, "?") {
		sep = "&"
	}
	return c.BaseURL + sep + "symbol=" + sym
}

// parseQuote converts the value found in the response into a Money.
// Endpoints disagree on the type: most return a number, some return a
// string, sometimes with a decimal comma.
func parseQuote(jval any) (brokerage.Money, error) {
	switch v := jval.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return brokerage.Money{}, fmt.Errorf("invalid quote %q: %v", v, err)
		}
		return brokerage.M(d), nil
	case float64:
		return brokerage.M(v), nil
	case string:
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return brokerage.Money{}, fmt.Errorf("invalid quote %q: %v", v, err)
		}
		return brokerage.M(d), nil
	default:
		return brokerage.Money{}, fmt.Errorf("quote is neither a number nor a string: %v", jval)
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response
// into data. Numbers are decoded as json.Number so quote values keep
// their exact digits.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(data)
}
