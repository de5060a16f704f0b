// Package market reads spot prices from a Binance-compatible public REST API.
package market

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crypto-trade-journal/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxRetries = 3

// ErrUnknownSymbol is returned when the exchange has no price for a symbol.
var ErrUnknownSymbol = errors.New("unknown symbol")

// PriceSource provides the latest prices for exchange symbols.
type PriceSource interface {
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// Client is a rate limited client for the public ticker endpoints.
// It implements PriceSource.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	backoff time.Duration // first retry delay, doubled on each attempt
}

// ensure Client implements the interface
var _ PriceSource = (*Client)(nil)

// NewClient creates a new market data client.
func NewClient(cfg config.Market, logger *zap.Logger) *Client {
	return &Client{
		client:  resty.New().SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).SetTimeout(10 * time.Second),
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
		backoff: time.Second,
	}
}

// TickerPrice represents the response for a single ticker price.
type TickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// ServerTime fetches the exchange clock in milliseconds. Used as a connectivity check.
func (c *Client) ServerTime(ctx context.Context) (int64, error) {
	type serverTimeResponse struct {
		ServerTime int64 `json:"serverTime"`
	}

	req := c.client.R().SetResult(&serverTimeResponse{})
	resp, err := c.doRequest(ctx, http.MethodGet, "/time", req)
	if err != nil {
		return 0, fmt.Errorf("failed to get server time: %w", err)
	}
	return resp.Result().(*serverTimeResponse).ServerTime, nil
}

// Price fetches the latest price of one symbol.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(symbol)
	req := c.client.R().
		SetQueryParam("symbol", symbol).
		SetResult(&TickerPrice{})

	resp, err := c.doRequest(ctx, http.MethodGet, "/ticker/price", req)
	if err != nil {
		return 0, fmt.Errorf("failed to get price for %s: %w", symbol, err)
	}
	return parsePrice(resp.Result().(*TickerPrice))
}

// Prices fetches the latest price of every requested symbol in one call.
// An empty list returns all symbols. Symbols the exchange does not list are
// left out of the result.
func (c *Client) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	var tickers []*TickerPrice
	req := c.client.R().SetResult(&tickers)

	wanted := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		wanted[strings.ToUpper(s)] = struct{}{}
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/ticker/price", req)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker prices: %w", err)
	}

	result := *resp.Result().(*[]*TickerPrice)
	prices := make(map[string]float64, len(wanted))
	for _, t := range result {
		if len(wanted) > 0 {
			if _, ok := wanted[t.Symbol]; !ok {
				continue
			}
		}
		p, err := parsePrice(t)
		if err != nil {
			c.logger.Warn("Skipping unparsable ticker", zap.String("symbol", t.Symbol), zap.String("price", t.Price))
			continue
		}
		prices[t.Symbol] = p
	}
	return prices, nil
}

func parsePrice(t *TickerPrice) (float64, error) {
	if t == nil || t.Symbol == "" {
		return 0, ErrUnknownSymbol
	}
	d, err := decimal.NewFromString(t.Price)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %s: %w", t.Price, t.Symbol, err)
	}
	return d.InexactFloat64(), nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error

	req.SetContext(ctx)
	for i := 0; i < maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil
		}

		shouldRetry := false
		var retryAfter time.Duration

		if err == nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests || statusCode == http.StatusTeapot {
				shouldRetry = true
				if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 {
				shouldRetry = true
			}
			err = fmt.Errorf("status %s: %s", resp.Status(), resp.String())
		} else if ctx.Err() == nil {
			// Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed: %w", err)
		}

		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * c.backoff
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
