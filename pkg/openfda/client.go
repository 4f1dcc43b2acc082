package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client queries the openFDA drug label API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the openFDA client
type Config struct {
	BaseURL string        // Default: https://api.fda.gov
	Timeout time.Duration // Default: 15s
}

// NewClient creates a new openFDA client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.fda.gov"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Label is a condensed drug label record
type Label struct {
	BrandName    string   `json:"brand_name"`
	GenericName  string   `json:"generic_name"`
	Purpose      []string `json:"purpose,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	DosageAdmin  []string `json:"dosage_and_administration,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
}

type labelResponse struct {
	Results []struct {
		Purpose                 []string `json:"purpose"`
		Warnings                []string `json:"warnings"`
		DosageAndAdministration []string `json:"dosage_and_administration"`
		OpenFDA                 struct {
			BrandName        []string `json:"brand_name"`
			GenericName      []string `json:"generic_name"`
			ManufacturerName []string `json:"manufacturer_name"`
		} `json:"openfda"`
	} `json:"results"`
}

// SearchLabel looks up the first matching drug label by brand or generic name
func (c *Client) SearchLabel(ctx context.Context, name string) (*Label, error) {
	query := fmt.Sprintf(`openfda.brand_name:%q openfda.generic_name:%q`, name, name)
	endpoint := fmt.Sprintf("%s/drug/label.json?search=%s&limit=1", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoLabel
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var lr labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(lr.Results) == 0 {
		return nil, ErrNoLabel
	}

	r := lr.Results[0]
	label := &Label{
		Purpose:     r.Purpose,
		Warnings:    r.Warnings,
		DosageAdmin: r.DosageAndAdministration,
	}
	if len(r.OpenFDA.BrandName) > 0 {
		label.BrandName = r.OpenFDA.BrandName[0]
	}
	if len(r.OpenFDA.GenericName) > 0 {
		label.GenericName = r.OpenFDA.GenericName[0]
	}
	if len(r.OpenFDA.ManufacturerName) > 0 {
		label.Manufacturer = r.OpenFDA.ManufacturerName[0]
	}

	return label, nil
}
