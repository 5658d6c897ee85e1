package roster

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/2capper/ballpark/models"
	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher загружает и разбирает страницу состава команды.
type Fetcher interface {
	FetchRoster(ctx context.Context, url string) (teamName string, entries []models.RosterEntry, err error)
}

type scraper struct {
	client *http.Client
}

func NewScraper() Fetcher {
	return &scraper{client: &http.Client{Timeout: 10 * time.Second}}
}

// FetchRoster запрашивает страницу команды. Без браузерного User-Agent сайт
// лиги отдаёт пустую страницу.
func (s *scraper) FetchRoster(ctx context.Context, url string) (string, []models.RosterEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build roster request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch roster page %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("roster page %s returned status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse roster page %s: %w", url, err)
	}

	teamName, entries := ParseRoster(doc)
	return teamName, entries, nil
}

// ParseRoster вытаскивает название команды и состав из страницы. Структура
// таблиц на сайте лиги плавает, поэтому разбираются все таблицы подряд:
// первая колонка — номер, вторая — имя, третья (если есть) — позиция.
func ParseRoster(doc *goquery.Document) (string, []models.RosterEntry) {
	teamName := strings.TrimSpace(doc.Find("h1").First().Text())

	var entries []models.RosterEntry
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // заголовок
			}
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}

			name := strings.TrimSpace(cells.Eq(1).Text())
			if name == "" || isHeaderLabel(name) {
				return
			}

			number := strings.TrimSpace(cells.Eq(0).Text())
			if !isDigits(number) {
				number = ""
			}

			position := ""
			if cells.Length() > 2 {
				position = strings.TrimSpace(cells.Eq(2).Text())
			}

			entries = append(entries, models.RosterEntry{
				Number:   number,
				Name:     name,
				Position: position,
				IsCoach:  isCoachPosition(position),
			})
		})
	})
	return teamName, entries
}

func isHeaderLabel(s string) bool {
	switch s {
	case "Name", "Player", "#":
		return true
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isCoachPosition(position string) bool {
	return strings.Contains(strings.ToLower(position), "coach")
}
