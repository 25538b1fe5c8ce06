package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const restTimeout = 6 * time.Second

// RestSource loads control specifications from a PostgREST-style catalog
// endpoint. The table endpoint is tried first; when it returns nothing
// parseable, a stored-procedure endpoint serves as fallback.
type RestSource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRestSource creates a REST catalog source for the given endpoint.
func NewRestSource(baseURL, apiKey string) *RestSource {
	return &RestSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: restTimeout},
	}
}

func (s *RestSource) Name() string { return "rest" }

func (s *RestSource) Load(ctx context.Context) ([]ControlSpec, error) {
	specs, err := s.loadTable(ctx)
	if err == nil && len(specs) > 0 {
		return specs, nil
	}

	rpcSpecs, rpcErr := s.loadRPC(ctx)
	if rpcErr != nil {
		if err != nil {
			return nil, fmt.Errorf("table: %w; rpc: %w", err, rpcErr)
		}
		return nil, rpcErr
	}
	return rpcSpecs, nil
}

func (s *RestSource) loadTable(ctx context.Context) ([]ControlSpec, error) {
	url := s.baseURL + "/rest/v1/control_specs?select=id,control_id,specification&limit=10000"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return s.fetch(req)
}

func (s *RestSource) loadRPC(ctx context.Context) ([]ControlSpec, error) {
	url := s.baseURL + "/rest/v1/rpc/get_all_control_specs"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader("{}"))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.fetch(req)
}

func (s *RestSource) fetch(req *http.Request) ([]ControlSpec, error) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("catalog response: %w", err)
	}

	var specs []ControlSpec
	if err := json.Unmarshal(body, &specs); err != nil {
		return nil, fmt.Errorf("catalog response: %w", err)
	}
	return specs, nil
}
