package plugin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds each request made by an HTTPAdapter.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPAdapter loads the initial markup from GetURL and posts every change
// to PostURL as a form with markup and html fields. Either URL may be empty
// to skip that direction.
type HTTPAdapter struct {
	GetURL  string
	PostURL string
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPAdapter creates an adapter using http.DefaultClient.
func NewHTTPAdapter(getURL, postURL string) *HTTPAdapter {
	return &HTTPAdapter{
		GetURL:  getURL,
		PostURL: postURL,
		Client:  http.DefaultClient,
		Timeout: DefaultHTTPTimeout,
	}
}

// Name implements event.Named.
func (a *HTTPAdapter) Name() string { return "http" }

// OnGetMarkup implements editor.MarkupGetter.
func (a *HTTPAdapter) OnGetMarkup() (string, error) {
	if a.GetURL == "" {
		return "", nil
	}
	ctx, cancel := a.context()
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.GetURL, nil)
	if err != nil {
		return "", fmt.Errorf("get markup: %w", err)
	}
	body, err := a.do(req)
	if err != nil {
		return "", fmt.Errorf("get markup: %w", err)
	}
	return body, nil
}

// OnMarkupChange implements editor.MarkupChanger.
func (a *HTTPAdapter) OnMarkupChange(fullMarkup, fullHTML string) error {
	if a.PostURL == "" {
		return nil
	}
	ctx, cancel := a.context()
	defer cancel()

	form := url.Values{
		"markup": {fullMarkup},
		"html":   {fullHTML},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.PostURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("post markup: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if _, err := a.do(req); err != nil {
		return fmt.Errorf("post markup: %w", err)
	}
	return nil
}

func (a *HTTPAdapter) context() (context.Context, context.CancelFunc) {
	if a.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), a.Timeout)
}

func (a *HTTPAdapter) do(req *http.Request) (string, error) {
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return string(data), nil
}
