package ingest

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// IndeedSource scrapes search result cards from Indeed. Plain HTTP via
// colly is tried first; when Indeed serves the empty bot-wall page the
// source falls back to a headless browser render.
type IndeedSource struct {
	baseURL     string
	allowedHost string
	headless    bool
}

func NewIndeedSource(baseURL string) *IndeedSource {
	s := &IndeedSource{baseURL: strings.TrimSpace(baseURL), headless: true}
	if s.baseURL == "" {
		s.baseURL = "https://www.indeed.com"
	}
	s.baseURL = strings.TrimRight(s.baseURL, "/")
	s.allowedHost = hostFromURL(s.baseURL)
	return s
}

func (s *IndeedSource) Name() string { return "indeed" }

func (s *IndeedSource) Fetch(ctx context.Context, term SearchTerm) ([]Posting, error) {
	listURL := s.searchURL(term)

	postings, err := s.fetchWithColly(ctx, listURL)
	if err == nil && len(postings) > 0 {
		return postings, nil
	}

	if s.headless {
		if headlessPostings, hErr := s.fetchHeadless(ctx, listURL); hErr == nil && len(headlessPostings) > 0 {
			return headlessPostings, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return postings, nil
}

func (s *IndeedSource) searchURL(term SearchTerm) string {
	q := url.Values{}
	q.Set("q", term.Keywords)
	if term.Location != "" {
		q.Set("l", term.Location)
	}
	return s.baseURL + "/jobs?" + q.Encode()
}

func (s *IndeedSource) fetchWithColly(ctx context.Context, listURL string) ([]Posting, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		RandomDelay: 800 * time.Millisecond,
		Delay:       400 * time.Millisecond,
	})

	postings := make([]Posting, 0, 16)
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range scrapeHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("div.job_seen_beacon", func(e *colly.HTMLElement) {
		p := Posting{
			Title:       strings.TrimSpace(e.ChildText("h2.jobTitle")),
			Company:     strings.TrimSpace(e.ChildText("span.companyName")),
			Location:    strings.TrimSpace(e.ChildText("div.companyLocation")),
			Description: strings.TrimSpace(e.ChildText("div.job-snippet")),
			JobType:     "Full-time",
			PostedDate:  time.Now().UTC(),
		}
		if p.Title == "" || p.Company == "" {
			return
		}

		href := strings.TrimSpace(e.ChildAttr("h2.jobTitle a", "href"))
		if href != "" {
			p.URL = e.Request.AbsoluteURL(href)
		}
		p.Remote = isRemoteLocation(p.Location)
		if min, max, ok := parseSalaryRange(e.ChildText("div.salary-snippet, div.metadata.salary-snippet-container")); ok {
			p.SalaryMin = &min
			p.SalaryMax = &max
		}

		postings = append(postings, p)
	})

	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()

	if reqErr != nil {
		return nil, reqErr
	}
	return postings, nil
}

func scrapeHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.8",
	}
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// parseSalaryRange understands the "$90,000 - $120,000 a year" strings
// Indeed renders on result cards. A single figure yields min == max.
func parseSalaryRange(raw string) (float64, float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, false
	}

	nums := make([]float64, 0, 2)
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		if v, err := strconv.ParseFloat(cur.String(), 64); err == nil {
			nums = append(nums, v)
		}
		cur.Reset()
	}
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			cur.WriteRune(r)
		case r == ',':
		case r == '.':
			cur.WriteRune(r)
		default:
			flush()
		}
		if len(nums) == 2 {
			break
		}
	}
	flush()

	switch len(nums) {
	case 0:
		return 0, 0, false
	case 1:
		return nums[0], nums[0], true
	default:
		if nums[0] > nums[1] {
			nums[0], nums[1] = nums[1], nums[0]
		}
		return nums[0], nums[1], true
	}
}
