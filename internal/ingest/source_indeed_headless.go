package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchHeadless renders the search page in a headless browser and reads
// the result cards out of the DOM. Indeed's bot wall serves an empty
// shell to plain HTTP clients, which is what lands us here.
func (s *IndeedSource) fetchHeadless(ctx context.Context, listURL string) ([]Posting, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(scrapeHeaders()["User-Agent"]),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer reqCancel()

	type card struct {
		Title    string `json:"title"`
		Company  string `json:"company"`
		Location string `json:"location"`
		Snippet  string `json:"snippet"`
		Salary   string `json:"salary"`
		Href     string `json:"href"`
	}

	var cards []card
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(listURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('div.job_seen_beacon')).map(el => ({
			title: (el.querySelector('h2.jobTitle')?.textContent || '').trim(),
			company: (el.querySelector('span.companyName')?.textContent || '').trim(),
			location: (el.querySelector('div.companyLocation')?.textContent || '').trim(),
			snippet: (el.querySelector('div.job-snippet')?.textContent || '').trim(),
			salary: (el.querySelector('div.salary-snippet, div.metadata.salary-snippet-container')?.textContent || '').trim(),
			href: el.querySelector('h2.jobTitle a')?.getAttribute('href') || ''
		}))`, &cards),
	)
	if err != nil {
		return nil, err
	}

	out := make([]Posting, 0, len(cards))
	for _, c := range cards {
		if c.Title == "" || c.Company == "" {
			continue
		}
		p := Posting{
			Title:       c.Title,
			Company:     c.Company,
			Location:    c.Location,
			Description: c.Snippet,
			JobType:     "Full-time",
			Remote:      isRemoteLocation(c.Location),
			PostedDate:  time.Now().UTC(),
		}
		if href := strings.TrimSpace(c.Href); href != "" {
			if strings.HasPrefix(href, "/") {
				p.URL = s.baseURL + href
			} else {
				p.URL = href
			}
		}
		if min, max, ok := parseSalaryRange(c.Salary); ok {
			p.SalaryMin = &min
			p.SalaryMax = &max
		}
		out = append(out, p)
	}
	return out, nil
}
