package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/platform"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// Config настройки клиента Admin API
type Config struct {
	APIVersion string
	Timeout    time.Duration
	// BaseURL переопределяет https://{shop}, используется в тестах
	BaseURL string
}

// Client клиент Admin API одного магазина
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     interfaces.LoggerPort
}

// NewClient создает клиент для сессии магазина
func NewClient(cfg Config, session models.Session, logger interfaces.LoggerPort) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + session.Shop
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
	})

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: src,
				Base:   &accessTokenTransport{token: session.AccessToken, base: http.DefaultTransport},
			},
		},
		logger: logger.WithField("shop", session.Shop),
	}
}

// accessTokenTransport дублирует токен в заголовке, который ожидает платформа
type accessTokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *accessTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set(accessTokenHeader, t.token)
	return t.base.RoundTrip(r)
}

// Factory создает клиентов по сессии
type Factory struct {
	cfg    Config
	logger interfaces.LoggerPort
}

// NewFactory создает фабрику клиентов Admin API
func NewFactory(cfg Config, logger interfaces.LoggerPort) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// ForSession реализация platform.ClientFactory
func (f *Factory) ForSession(session models.Session) platform.AdminAPI {
	return NewClient(f.cfg, session, f.logger)
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, strings.TrimLeft(path, "/"))
}

// doJSON выполняет запрос и декодирует ответ в out. Статусы вне 2xx считаются ошибкой платформы.
func (c *Client) doJSON(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", models.ErrUpstream, method, url, err)
	}
	defer resp.Body.Close()

	c.logger.DebugWithContext(ctx, "Ответ Admin API",
		interfaces.LogField{Key: "method", Value: method},
		interfaces.LogField{Key: "url", Value: url},
		interfaces.LogField{Key: "status", Value: resp.StatusCode},
		interfaces.LogField{Key: "duration", Value: time.Since(start).String()},
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", models.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr restErrorBody
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Errors != nil {
			return fmt.Errorf("%w: status %d: %v", models.ErrUpstream, resp.StatusCode, apiErr.Errors)
		}
		return fmt.Errorf("%w: status %d", models.ErrUpstream, resp.StatusCode)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", models.ErrUpstream, err)
	}
	return nil
}

// graphQL выполняет запрос к graphql.json. Ошибки верхнего уровня превращаются в ErrUpstream.
func graphQL[T any](ctx context.Context, c *Client, query string, vars map[string]any) (T, error) {
	var resp graphQLResponse[T]
	err := c.doJSON(ctx, http.MethodPost, c.endpoint("graphql.json"), graphQLRequest{Query: query, Variables: vars}, &resp)
	if err != nil {
		return resp.Data, err
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return resp.Data, fmt.Errorf("%w: %s", models.ErrUpstream, strings.Join(msgs, "; "))
	}

	return resp.Data, nil
}

func toFieldErrors(errs []userError) []models.FieldError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]models.FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, models.FieldError{Field: e.Field, Message: e.Message})
	}
	return out
}
