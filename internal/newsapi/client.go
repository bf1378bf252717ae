// newsapi — клиент поискового API новостей (NewsData.io-совместимый)
// и статический mock-набор для работы без ключа.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"

	"github.com/BoalRolo/newsdotai/internal/config"
)

// Searcher — контракт поиска, которым пользуются fetcher и сервис.
type Searcher interface {
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)
	Configured() bool
}

// SearchParams — допустимые параметры поиска.
type SearchParams struct {
	Query    string
	Language string
	Country  string
	Category string
	Page     string
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}

	set("q", p.Query)
	set("language", p.Language)
	set("country", p.Country)
	set("category", p.Category)
	set("page", p.Page)

	return v
}

// ParamsFromQuery выбирает из произвольного query только разрешённые параметры.
func ParamsFromQuery(q url.Values) SearchParams {
	return SearchParams{
		Query:    q.Get("q"),
		Language: q.Get("language"),
		Country:  q.Get("country"),
		Category: q.Get("category"),
		Page:     q.Get("page"),
	}
}

// SearchResponse — ответ API; записи остаются «сырыми» до нормализации.
type SearchResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Results      []json.RawMessage `json:"results"`
	NextPage     string            `json:"nextPage,omitempty"`
}

// errorBody — тело ошибки API; NewsData.io кладёт текст в results.message.
type errorBody struct {
	Message string `json:"message"`
	Results struct {
		Message string `json:"message"`
	} `json:"results"`
}

// maxBody ограничивает размер читаемого ответа.
const maxBody = 8 << 20

// Client — живой клиент API поверх go-pkgz/requester.
type Client struct {
	baseURL  string
	apiKey   string
	viaProxy bool
	rq       *requester.Requester
}

// NewClient собирает клиент из конфигурации.
func NewClient(cfg config.NewsAPIConfig) *Client {
	rq := requester.New(
		http.Client{Timeout: cfg.Timeout},
		middleware.Header("Accept", "application/json"),
		loggingRoundTripper(slog.LevelDebug),
	)

	return &Client{
		baseURL:  strings.TrimSpace(cfg.BaseURL),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		viaProxy: cfg.ViaProxy,
		rq:       rq,
	}
}

// Configured — есть базовый URL и ключ (или прокси, подставляющий ключ сам).
func (c *Client) Configured() bool {
	if c == nil || c.baseURL == "" {
		return false
	}

	return c.viaProxy || c.apiKey != ""
}

// Search выполняет поиск и разбирает ответ.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	const op = "newsapi/client/Search"

	body, err := c.get(ctx, params.values())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w: decode: %v", op, ErrUpstream, err)
	}

	if resp.Status == "error" {
		return nil, fmt.Errorf("%s: %w", op, statusError(http.StatusBadGateway, "api reported error status"))
	}

	return &resp, nil
}

// Proxy пропускает запрос клиента к API как есть: разрешённые параметры
// плюс серверный ключ. Возвращает тело ответа без изменений.
func (c *Client) Proxy(ctx context.Context, query url.Values) (json.RawMessage, error) {
	const op = "newsapi/client/Proxy"

	body, err := c.get(ctx, ParamsFromQuery(query).values())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: %w", op, ErrUpstream)
	}

	return body, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	for key, vals := range params {
		q[key] = vals
	}

	if c.apiKey != "" && !c.viaProxy {
		q.Set("apikey", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.rq.Do(req)
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, upstreamMessage(body, resp.Status))
	}

	return body, nil
}

// classifyTransport отличает отмену вызывающим от таймаута и прочих сетевых ошибок.
func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

func upstreamMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}

		if eb.Results.Message != "" {
			return eb.Results.Message
		}
	}

	return fallback
}
