package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/stirlingbridge/landdev/internal/boundary"
)

// Client fetches boundary features from the configured map services.
// Responses are cached per request URL with a per-source TTL.
type Client struct {
	http    *http.Client
	cache   *ttlCache
	sources []Source
}

// NewClient creates a client over the given sources; with none given it
// uses DefaultSources.
func NewClient(sources ...Source) *Client {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   newTTLCache(),
		sources: sources,
	}
}

// FetchBoundaries queries every source concurrently and merges the
// results. Per-layer failures come back as error strings so one broken
// upstream never sinks the whole identification.
func (c *Client) FetchBoundaries(ctx context.Context, lat, lng float64) ([]boundary.Boundary, []string) {
	var (
		mu         sync.Mutex
		boundaries []boundary.Boundary
		errs       []string
		wg         sync.WaitGroup
	)

	for _, src := range c.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			bs, es := c.fetchSource(ctx, src, lat, lng)
			mu.Lock()
			boundaries = append(boundaries, bs...)
			errs = append(errs, es...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	slog.Info("upstream fetch complete", "lat", lat, "lng", lng,
		"boundaries", len(boundaries), "errors", len(errs))
	return boundaries, errs
}

func (c *Client) fetchSource(ctx context.Context, src Source, lat, lng float64) ([]boundary.Boundary, []string) {
	var out []boundary.Boundary
	var errs []string

	for _, layer := range src.Layers {
		features, err := c.fetchLayer(ctx, src, layer, lat, lng)
		if err != nil {
			slog.Warn("upstream layer query failed",
				"source", src.Name, "layer", layer.Key, "err", err)
			errs = append(errs, fmt.Sprintf("%s/%s: %v", src.Name, layer.Key, err))
			continue
		}

		for _, f := range features {
			if f.Geometry == nil || f.Attributes == nil {
				continue
			}
			if layer.Keep != nil && !layer.Keep(f.Geometry, lat, lng) {
				continue
			}
			out = append(out, boundary.Boundary{
				LayerName:  layer.Name(f.Attributes),
				LayerType:  layer.TypeName,
				Geometry:   f.Geometry,
				Properties: f.Attributes,
				SourceAPI:  src.API,
			})
		}
	}
	return out, errs
}

func (c *Client) fetchLayer(ctx context.Context, src Source, layer Layer, lat, lng float64) ([]esriFeature, error) {
	reqURL := identifyURL(src, layer, lat, lng)
	if layer.UseQuery {
		reqURL = queryURL(src, layer, lat, lng)
	}

	body, cached := c.cache.Get(reqURL)
	if !cached {
		var err error
		body, err = c.get(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		c.cache.Set(reqURL, body, src.TTL)
	} else {
		slog.Debug("upstream cache hit", "source", src.Name, "layer", layer.Key)
	}

	if layer.UseQuery {
		var resp queryResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decoding query response: %w", err)
		}
		return resp.Features, nil
	}
	var resp identifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding identify response: %w", err)
	}
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
