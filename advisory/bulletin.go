package advisory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

type bulletinService struct {
	httpClient  *http.Client
	bulletinURL string
	userAgent   string
}

// NewBulletinService returns the service responsible for retrieving the
// top-level security bulletin. Failure to fetch the bulletin is the only
// fatal condition of the whole pipeline - without it there is nothing to
// enrich.
func NewBulletinService(bulletinURL, userAgent string, timeout time.Duration) bulletinService {
	return bulletinService{
		httpClient:  &http.Client{Timeout: timeout},
		bulletinURL: bulletinURL,
		userAgent:   userAgent,
	}
}

func (s bulletinService) FetchIndex(ctx context.Context) ([]byte, error) {
	slog.Info("fetching security bulletin", "url", s.bulletinURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.bulletinURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not create bulletin request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch bulletin")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("could not fetch bulletin. Status code: %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read bulletin body")
	}

	return body, nil
}
