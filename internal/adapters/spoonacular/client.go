package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/platform/metrics"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/recipeapi"
)

const (
	DefaultBaseURL = "https://api.spoonacular.com"
	DefaultTimeout = 10 * time.Second

	// APIKeyEnv names the environment variable holding the provider credential.
	APIKeyEnv = "RECIPE_API_KEY"

	opFindByIngredients = "findByIngredients"
	opInformationBulk   = "informationBulk"
	opInformation       = "information"

	// maxErrorBody bounds how much of an error response is kept for logs.
	maxErrorBody = 512
)

var _ recipeapi.Gateway = (*Client)(nil)

// Options configures a Client. Zero values select defaults.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	// APIKey resolves the credential on every call. Defaults to reading APIKeyEnv.
	APIKey func() string
	Logger *slog.Logger
}

// Client is a recipeapi.Gateway backed by the Spoonacular HTTP API.
type Client struct {
	baseURL string
	hc      *http.Client
	apiKey  func() string
	log     *slog.Logger
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Transport: NewTransport(),
			Timeout:   opts.Timeout,
		}
	}
	if opts.APIKey == nil {
		opts.APIKey = func() string { return os.Getenv(APIKeyEnv) }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		hc:      opts.HTTPClient,
		apiKey:  opts.APIKey,
		log:     opts.Logger,
	}
}

func (c *Client) FindByIngredients(ctx context.Context, ingredients string) ([]domain.RawMatch, error) {
	q := url.Values{}
	q.Set("ingredients", ingredients)
	q.Set("number", strconv.Itoa(recipeapi.MaxCandidates))
	q.Set("ranking", "1")
	q.Set("ignorePantry", "false")

	var wire []wireMatch
	if err := c.getJSON(ctx, opFindByIngredients, "/recipes/findByIngredients", q, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.RawMatch, 0, len(wire))
	for _, m := range wire {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (c *Client) InformationBulk(ctx context.Context, ids []domain.RecipeID) ([]domain.DetailRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(int64(id), 10))
	}
	q := url.Values{}
	q.Set("ids", strings.Join(parts, ","))
	q.Set("includeNutrition", "true")

	var wire []wireInformation
	if err := c.getJSON(ctx, opInformationBulk, "/recipes/informationBulk", q, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.DetailRecord, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (c *Client) Information(ctx context.Context, id domain.RecipeID) (domain.DetailRecord, error) {
	q := url.Values{}
	q.Set("includeNutrition", "true")

	var wire wireInformation
	path := "/recipes/" + strconv.FormatInt(int64(id), 10) + "/information"
	if err := c.getJSON(ctx, opInformation, path, q, &wire); err != nil {
		return domain.DetailRecord{}, err
	}
	return wire.toDomain(), nil
}

// getJSON issues a GET and decodes a 2xx body into dst. The API key is added
// here so that it never appears in returned errors.
func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, dst any) error {
	key := c.apiKey()
	if key == "" {
		return recipeapi.ErrNotConfigured
	}
	q.Set("apiKey", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return &recipeapi.Error{Op: op, Err: errors.New("build request")}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.ObserveUpstream(op, "error", time.Since(start))
		return &recipeapi.Error{Op: op, Err: redact(err)}
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(op, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.WarnContext(ctx, "recipe provider returned non-success status",
			"op", op,
			"status", resp.StatusCode,
			"body", strings.TrimSpace(string(body)),
		)
		return &recipeapi.Error{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &recipeapi.Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// redact drops the request URL, which carries the API key, from transport errors.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
