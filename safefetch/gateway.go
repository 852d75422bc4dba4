package safefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	// MaxBodyBytes caps the response body kept from a fetched URL.
	MaxBodyBytes = 10000

	userAgent    = "ArtAuctionBot/1.0"
	acceptHeader = "application/json,text/plain,*/*"
	fetchTimeout = 5 * time.Second
)

// Doer issues a single HTTP request. The production client never follows
// redirects; tests inject fakes that try to.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type OutcomeKind int

const (
	// OutcomeContent carries a capped body from a 200 response.
	OutcomeContent OutcomeKind = iota
	// OutcomeBlocked means a safety check refused the request or response.
	OutcomeBlocked
	// OutcomeUpstreamError covers network failures and non-200 statuses.
	OutcomeUpstreamError
)

type Outcome struct {
	Kind     OutcomeKind
	Body     []byte
	FinalURL string
	Reason   string
}

func blocked(reason string) Outcome {
	return Outcome{Kind: OutcomeBlocked, Reason: reason}
}

func upstreamError(reason string) Outcome {
	return Outcome{Kind: OutcomeUpstreamError, Reason: reason}
}

type Gateway struct {
	classifier Classifier
	client     Doer
	logs       *zap.SugaredLogger
}

func NewGateway(classifier Classifier, client Doer, logger *zap.SugaredLogger) Gateway {
	if client == nil {
		client = &http.Client{
			Timeout: fetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Observe 3xx responses instead of chasing them: the
				// classifier never sees the second hop otherwise.
				return http.ErrUseLastResponse
			},
		}
	}
	return Gateway{
		classifier: classifier,
		client:     client,
		logs:       logger,
	}
}

// Fetch performs one bounded GET of rawURL. Redirects are reported but never
// followed, and the final response URL is re-classified before any body
// content is trusted.
func (g Gateway) Fetch(ctx context.Context, rawURL string) Outcome {
	decision := g.classifier.Classify(ctx, rawURL)
	if !decision.Allowed {
		g.logs.Warnw("unsafe url blocked", "url", rawURL, "reason", decision.Reason)
		return blocked(decision.Reason)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return blocked("некорректный URL")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logs.Infow("fetch failed", "url", rawURL, "error", err)
		return upstreamError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return g.refuseRedirect(ctx, rawURL, resp)
	}

	if resp.StatusCode != http.StatusOK {
		return upstreamError(fmt.Sprintf("ошибка загрузки (%d)", resp.StatusCode))
	}

	// A permissive client may have followed a redirect despite the
	// configuration above; re-check where the response actually came from.
	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	if final := g.classifier.Classify(ctx, finalURL); !final.Allowed {
		g.logs.Warnw("unsafe final url blocked", "url", finalURL, "reason", final.Reason)
		return blocked("небезопасный URL ответа")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return upstreamError(err.Error())
	}

	return Outcome{Kind: OutcomeContent, Body: body, FinalURL: finalURL}
}

// refuseRedirect classifies the redirect target for the log trail but always
// refuses to follow: a second hop could still escape detection, so redirect
// chasing is disabled categorically rather than allowed-if-safe.
func (g Gateway) refuseRedirect(ctx context.Context, rawURL string, resp *http.Response) Outcome {
	loc := resp.Header.Get("Location")
	if loc == "" {
		return blocked("некорректный редирект")
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return blocked("некорректный редирект")
	}
	target, err := base.Parse(loc)
	if err != nil {
		return blocked("некорректный редирект")
	}

	if decision := g.classifier.Classify(ctx, target.String()); !decision.Allowed {
		g.logs.Warnw("unsafe redirect blocked", "url", rawURL, "target", target.String())
		return blocked("небезопасный редирект")
	}

	return blocked("редиректы запрещены")
}
