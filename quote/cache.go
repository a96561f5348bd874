package quote

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"sync"
	"time"
)

// DefaultTTL is how long cached quote responses stay fresh.
const DefaultTTL = 5 * time.Minute

// memCache is an in-memory cache for HTTP responses, so repeated
// valuations within the TTL hit the quote endpoint once per symbol.
type memCache struct {
	base http.RoundTripper
	ttl  time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	content []byte
	expires time.Time
}

func (c *memCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%x", sha1.Sum([]byte(req.Method+" "+req.URL.String())))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a fresh cached response.
func (c *memCache) get(key string, req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, fmt.Errorf("cache miss")
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(entry.content)), req)
}

// put stores a response and drops every expired entry. DumpResponse
// leaves resp.Body readable for the caller.
func (c *memCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{content: content, expires: now.Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// NewCachingClient returns an http.Client whose responses stay cached in
// memory for ttl. A non-positive ttl means DefaultTTL.
func NewCachingClient(ttl time.Duration) *http.Client {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	client := new(http.Client)
	client.Transport = &memCache{
		base:    http.DefaultTransport,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
	return client
}
