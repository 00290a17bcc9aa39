package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/govjobs/apiserver/config"
	"github.com/govjobs/apiserver/internal/cache"
	"github.com/govjobs/apiserver/types"
)

const defaultSearchTimeout = 15 * time.Second

// JobsService proxies keyword searches to the USAJOBS API and normalizes
// the response. Results are cached per keyword when a cache is configured.
type JobsService struct {
	client *http.Client
	cfg    config.USAJobsConfig
	cache  *cache.SearchCache
}

// NewJobsService constructs a JobsService. searchCache may be nil, in which
// case every search goes to the upstream API.
func NewJobsService(cfg config.USAJobsConfig, searchCache *cache.SearchCache) *JobsService {
	return &JobsService{
		client: &http.Client{Timeout: defaultSearchTimeout},
		cfg:    cfg,
		cache:  searchCache,
	}
}

// usajobsResponse mirrors the slice of the USAJOBS search payload we read.
type usajobsResponse struct {
	SearchResult struct {
		SearchResultItems []struct {
			MatchedObjectDescriptor struct {
				PositionTitle           string `json:"PositionTitle"`
				PositionLocationDisplay string `json:"PositionLocationDisplay"`
				OrganizationName        string `json:"OrganizationName"`
				PositionURI             string `json:"PositionURI"`
				PositionRemuneration    []struct {
					MinimumRange string `json:"MinimumRange"`
					MaximumRange string `json:"MaximumRange"`
					Description  string `json:"Description"`
				} `json:"PositionRemuneration"`
			} `json:"MatchedObjectDescriptor"`
		} `json:"SearchResultItems"`
	} `json:"SearchResult"`
}

// Search returns normalized postings for the keyword. Cache errors fall
// through to the upstream call; a failed upstream call is terminal.
func (s *JobsService) Search(ctx context.Context, keyword string) ([]types.Job, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(keyword))

	if s.cache != nil {
		var cached []types.Job
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	jobs, err := s.fetch(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, jobs)
	}
	return jobs, nil
}

func (s *JobsService) fetch(ctx context.Context, keyword string) ([]types.Job, error) {
	searchURL := fmt.Sprintf("%s/api/search?Keyword=%s", s.cfg.BaseURL, url.QueryEscape(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Authorization-Key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usajobs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("usajobs responded with status %d", resp.StatusCode)
	}

	var payload usajobsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode usajobs response: %w", err)
	}

	jobs := make([]types.Job, 0, len(payload.SearchResult.SearchResultItems))
	for _, item := range payload.SearchResult.SearchResultItems {
		descriptor := item.MatchedObjectDescriptor

		job := types.Job{
			Title:        fallback(descriptor.PositionTitle, "N/A"),
			Location:     fallback(descriptor.PositionLocationDisplay, "N/A"),
			Organization: fallback(descriptor.OrganizationName, "N/A"),
			ApplyURL:     fallback(descriptor.PositionURI, "#"),
			SalaryMin:    "0",
			SalaryMax:    "0",
			SalaryType:   "Unknown",
		}
		if len(descriptor.PositionRemuneration) > 0 {
			remuneration := descriptor.PositionRemuneration[0]
			job.SalaryMin = fallback(remuneration.MinimumRange, "0")
			job.SalaryMax = fallback(remuneration.MaximumRange, "0")
			job.SalaryType = fallback(remuneration.Description, "Unknown")
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
