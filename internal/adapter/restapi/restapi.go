// Package restapi is the HTTP transport to the remote catalog API.
//
// Statuses 200, 201 and 204 are success. Any other status, and any request
// that fails to complete, is returned as [*domain.TransportError] carrying
// the server message when the failure body has one.
package restapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var _ port.CatalogAPI = (*Client)(nil)

var ErrNoBaseURL = errors.New("base URL is not set")

const (
	productsPath = "/products"
	reviewsPath  = "/reviews"

	requestIDHeader = "X-Request-ID"
	maxBodySize     = 10 << 20
)

type Opt func(*clientOpts) error

type clientOpts struct {
	baseURL *url.URL
	timeout time.Duration
	tls     *tls.Config
	http    *http.Client
}

func BaseURLOpt(raw string) Opt {
	return func(o *clientOpts) error {
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		if !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("base URL %q is not absolute", raw)
		}
		o.baseURL = u
		return nil
	}
}

// TimeoutOpt sets the request timeout, zero keeps the transport default.
func TimeoutOpt(d time.Duration) Opt {
	return func(o *clientOpts) error {
		if d < 0 {
			return errors.New("timeout is negative")
		}
		o.timeout = d
		return nil
	}
}

func TLSOpt(cfg *tls.Config) Opt {
	return func(o *clientOpts) error {
		o.tls = cfg
		return nil
	}
}

// HTTPClientOpt replaces the underlying client, timeout and TLS options are
// ignored when it is set.
func HTTPClientOpt(cl *http.Client) Opt {
	return func(o *clientOpts) error {
		if cl == nil {
			return errors.New("http client is nil")
		}
		o.http = cl
		return nil
	}
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func New(opts ...Opt) (Client, error) {
	const op = "restapi.New"

	var options clientOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return Client{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if options.baseURL == nil {
		return Client{}, fmt.Errorf("%s: %w", op, ErrNoBaseURL)
	}

	cl := options.http
	if cl == nil {
		cl = &http.Client{Timeout: options.timeout}
		if options.tls != nil {
			cl.Transport = &http.Transport{TLSClientConfig: options.tls}
		}
	}

	return Client{baseURL: options.baseURL, http: cl}, nil
}

func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	var list productList
	if err := c.do(ctx, http.MethodGet, productsPath, nil, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !isJSONArray(list.Data) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrNoProducts)
	}

	var ps []product
	if err := json.Unmarshal(list.Data, &ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, malformed(err))
	}

	products := make([]domain.Product, len(ps))
	for i, p := range ps {
		products[i] = p.toDomain()
	}
	return products, nil
}

func (c Client) FetchProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "Client.FetchProduct"

	var p product
	err := c.do(ctx, http.MethodGet, itemPath(productsPath, id), nil, &p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p.toDomain(), nil
}

func (c Client) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Client.CreateProduct"

	body := productFromDomain(p)
	body.ID = ""

	var created product
	err := c.do(ctx, http.MethodPost, productsPath, body, optional(&created))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created.toDomain(), nil
}

func (c Client) UpdateProduct(
	ctx context.Context, id string, p domain.Product,
) (domain.Product, error) {
	const op = "Client.UpdateProduct"

	body := productFromDomain(p)
	body.ID = ""

	var updated product
	path := itemPath(productsPath, id)
	err := c.do(ctx, http.MethodPatch, path, body, optional(&updated))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated.toDomain(), nil
}

func (c Client) DeleteProduct(ctx context.Context, id string) error {
	const op = "Client.DeleteProduct"

	err := c.do(ctx, http.MethodDelete, itemPath(productsPath, id), nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) FetchReviews(
	ctx context.Context, productID string,
) ([]domain.Review, error) {
	const op = "Client.FetchReviews"

	var rs []review
	err := c.do(ctx, http.MethodGet, itemPath(reviewsPath, productID), nil, &rs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reviews := make([]domain.Review, len(rs))
	for i, r := range rs {
		reviews[i] = r.toDomain()
	}
	return reviews, nil
}

func (c Client) CreateReview(
	ctx context.Context, r domain.Review,
) (domain.Review, error) {
	const op = "Client.CreateReview"

	body := reviewFromDomain(r)
	body.ID = ""

	var created review
	err := c.do(ctx, http.MethodPost, reviewsPath, body, optional(&created))
	if err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return created.toDomain(), nil
}

func (c Client) UpdateReview(
	ctx context.Context, id string, u domain.ReviewUpdate,
) error {
	const op = "Client.UpdateReview"

	body := reviewUpdateFromDomain(u)
	err := c.do(ctx, http.MethodPatch, itemPath(reviewsPath, id), body, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) DeleteReview(ctx context.Context, id string) error {
	const op = "Client.DeleteReview"

	err := c.do(ctx, http.MethodDelete, itemPath(reviewsPath, id), nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// optionalBody marks a response target whose decoding failure is ignored.
type optionalBody struct {
	v any
}

func optional(v any) optionalBody {
	return optionalBody{v}
}

func (c Client) do(
	ctx context.Context, method, path string, body any, out any,
) error {
	const op = "Client.do"
	reqID := uuid.NewString()
	log := slog.With("op", op, "method", method, "path", path, "requestID", reqID)

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set(requestIDHeader, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", "err", err)
		return &domain.TransportError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("failed to close response body", "err", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &domain.TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		var f failure
		_ = json.Unmarshal(data, &f)
		log.Warn("unexpected status", "status", resp.StatusCode)
		return &domain.TransportError{
			StatusCode: resp.StatusCode,
			Message:    f.Message,
		}
	}

	log.Debug("request completed", "status", resp.StatusCode)
	return decode(resp.StatusCode, data, out)
}

func (c Client) newRequest(
	ctx context.Context, method, path string, body any,
) (*http.Request, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// resolve appends an escaped path to the base URL. Segments are kept as
// given, so an item path always addresses the item.
func (c Client) resolve(escaped string) (*url.URL, error) {
	u := *c.baseURL
	u.RawPath = strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + escaped
	p, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, err
	}
	u.Path = p
	return &u, nil
}

func decode(status int, data []byte, out any) error {
	switch v := out.(type) {
	case nil:
		return nil
	case optionalBody:
		if len(bytes.TrimSpace(data)) != 0 {
			_ = json.Unmarshal(data, v.v)
		}
		return nil
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return &domain.TransportError{StatusCode: status, Err: malformed(err)}
		}
		return nil
	}
}

func malformed(err error) error {
	return fmt.Errorf("malformed response: %w", err)
}

func isSuccess(status int) bool {
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return true
	}
	return false
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) != 0 && raw[0] == '['
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
