package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultGitHubAPIBaseURL = "https://api.github.com"

// IssueProgress — сколько issue трекера закрыто и какой это процент.
// Показывается на странице листа ожидания как индикатор готовности продукта.
type IssueProgress struct {
	Resolved   int `json:"resolved"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ProgressService считает прогресс по issue через GitHub Search API.
// SDK для GitHub не используется: нужен один endpoint с одним полем ответа.
type ProgressService struct {
	httpClient *http.Client
	baseURL    string
	token      string
	repo       string // owner/name
}

func NewProgressService(repo, token string) *ProgressService {
	return &ProgressService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultGitHubAPIBaseURL,
		token:      token,
		repo:       repo,
	}
}

// NewProgressServiceWithBaseURL нужен тестам, чтобы подменить GitHub API.
func NewProgressServiceWithBaseURL(repo, token, baseURL string) *ProgressService {
	s := NewProgressService(repo, token)
	s.baseURL = baseURL
	return s
}

// GetIssueProgress запрашивает количество закрытых и всех issue. Два поиска
// независимы, поэтому выполняются параллельно; ошибка любого из них
// отменяет второй через контекст группы.
func (s *ProgressService) GetIssueProgress(ctx context.Context) (*IssueProgress, error) {
	var resolved, total int

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.searchIssueCount(gCtx, fmt.Sprintf("repo:%s type:issue state:closed", s.repo))
		if err != nil {
			return err
		}
		resolved = n
		return nil
	})
	g.Go(func() error {
		n, err := s.searchIssueCount(gCtx, fmt.Sprintf("repo:%s type:issue", s.repo))
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(resolved) / float64(total) * 100))
	}

	return &IssueProgress{
		Resolved:   resolved,
		Total:      total,
		Percentage: percentage,
	}, nil
}

func (s *ProgressService) searchIssueCount(ctx context.Context, searchQuery string) (int, error) {
	endpoint := fmt.Sprintf("%s/search/issues?q=%s&per_page=1", s.baseURL, url.QueryEscape(searchQuery))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build GitHub search request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GitHub search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GitHub search returned status %d", resp.StatusCode)
	}

	var result struct {
		TotalCount int `json:"total_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode GitHub search response: %w", err)
	}

	return result.TotalCount, nil
}
