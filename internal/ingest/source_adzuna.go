package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AdzunaSource pulls postings from the Adzuna search API.
type AdzunaSource struct {
	client  *http.Client
	baseURL string
	appID   string
	apiKey  string
	country string
	perPage int
}

func NewAdzunaSource(appID, apiKey, country string) *AdzunaSource {
	if strings.TrimSpace(country) == "" {
		country = "us"
	}
	return &AdzunaSource{
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
		baseURL: "https://api.adzuna.com",
		appID:   appID,
		apiKey:  apiKey,
		country: strings.ToLower(strings.TrimSpace(country)),
		perPage: 50,
	}
}

// NewAdzunaSourceWithBaseURL exists for tests pointed at a stub server.
func NewAdzunaSourceWithBaseURL(appID, apiKey, country, baseURL string) *AdzunaSource {
	s := NewAdzunaSource(appID, apiKey, country)
	if strings.TrimSpace(baseURL) != "" {
		s.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
	return s
}

func (s *AdzunaSource) Name() string { return "adzuna" }

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

type adzunaResult struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	RedirectURL  string         `json:"redirect_url"`
	Created      string         `json:"created"`
	SalaryMin    *float64       `json:"salary_min"`
	SalaryMax    *float64       `json:"salary_max"`
	ContractTime string         `json:"contract_time"`
	Company      adzunaCompany  `json:"company"`
	Location     adzunaLocation `json:"location"`
}

type adzunaSearchResponse struct {
	Results []adzunaResult `json:"results"`
}

func (s *AdzunaSource) Fetch(ctx context.Context, term SearchTerm) ([]Posting, error) {
	if strings.TrimSpace(s.appID) == "" || strings.TrimSpace(s.apiKey) == "" {
		return nil, fmt.Errorf("adzuna: missing credentials")
	}

	q := url.Values{}
	q.Set("app_id", s.appID)
	q.Set("app_key", s.apiKey)
	q.Set("what", term.Keywords)
	if term.Location != "" && !isRemoteLocation(term.Location) {
		q.Set("where", term.Location)
	}
	q.Set("results_per_page", fmt.Sprintf("%d", s.perPage))
	q.Set("content-type", "application/json")

	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/1?%s", s.baseURL, s.country, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna: unexpected status %d", resp.StatusCode)
	}

	var body adzunaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("adzuna: decode response: %w", err)
	}

	out := make([]Posting, 0, len(body.Results))
	for _, r := range body.Results {
		title := strings.TrimSpace(r.Title)
		company := strings.TrimSpace(r.Company.DisplayName)
		if title == "" || company == "" {
			continue
		}

		p := Posting{
			Title:       title,
			Company:     company,
			Location:    strings.TrimSpace(r.Location.DisplayName),
			Description: strings.TrimSpace(r.Description),
			SalaryMin:   r.SalaryMin,
			SalaryMax:   r.SalaryMax,
			JobType:     contractTimeToJobType(r.ContractTime),
			URL:         strings.TrimSpace(r.RedirectURL),
			PostedDate:  parseAdzunaTime(r.Created),
			Remote:      isRemoteLocation(term.Location) || isRemoteLocation(r.Location.DisplayName),
		}
		out = append(out, p)
	}
	return out, nil
}

func contractTimeToJobType(ct string) string {
	switch strings.ToLower(strings.TrimSpace(ct)) {
	case "part_time":
		return "Part-time"
	case "contract":
		return "Contract"
	default:
		return "Full-time"
	}
}

func parseAdzunaTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func isRemoteLocation(loc string) bool {
	return strings.Contains(strings.ToLower(loc), "remote")
}
