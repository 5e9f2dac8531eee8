package restapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/restapi"
	"github.com/niksmo/catalog/internal/adapter/storage"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, seed ...domain.Product) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(httphandler.NewHandler(storage.NewMemory(seed)))
	t.Cleanup(srv.Close)
	return srv
}

func newRawServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) restapi.Client {
	t.Helper()
	cl, err := restapi.New(
		restapi.BaseURLOpt(baseURL),
		restapi.TimeoutOpt(2*time.Second),
	)
	require.NoError(t, err)
	return cl
}

func transportError(t *testing.T, err error) *domain.TransportError {
	t.Helper()
	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	return te
}

func TestNew(t *testing.T) {
	_, err := restapi.New()
	require.ErrorIs(t, err, restapi.ErrNoBaseURL)

	_, err = restapi.New(restapi.BaseURLOpt("/relative"))
	require.Error(t, err)

	_, err = restapi.New(
		restapi.BaseURLOpt("http://localhost"),
		restapi.TimeoutOpt(-time.Second),
	)
	require.Error(t, err)
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	srv := newStubServer(t, domain.Product{
		Name: "Widget", Category: "Tools", Price: 10,
	})
	cl := newClient(t, srv.URL)

	ps, err := cl.FetchProducts(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Widget", ps[0].Name)
	assert.NotEmpty(t, ps[0].ID)

	created, err := cl.CreateProduct(ctx, domain.Product{
		Name: "Gadget", Category: "Electronics", Price: 50,
		Tags: []string{"new"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 50.0, created.Price)
	assert.Equal(t, []string{"new"}, created.Tags)

	got, err := cl.FetchProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", got.Name)

	updated, err := cl.UpdateProduct(ctx, created.ID, domain.Product{
		Name: "Gadget Pro", Category: "Electronics", Price: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Gadget Pro", updated.Name)

	require.NoError(t, cl.DeleteProduct(ctx, created.ID))

	err = cl.DeleteProduct(ctx, created.ID)
	te := transportError(t, err)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.Equal(t, "not found", te.Message)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	srv := newStubServer(t)
	cl := newClient(t, srv.URL)

	created, err := cl.CreateReview(ctx, domain.Review{
		ProductID: "p1", Rating: 4, ReviewerName: "Ann", Comment: "Good",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	comment := "Better"
	require.NoError(t, cl.UpdateReview(ctx, created.ID,
		domain.ReviewUpdate{Comment: &comment}))

	rs, err := cl.FetchReviews(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "Better", rs[0].Comment)
	assert.Equal(t, 4, rs[0].Rating)

	require.NoError(t, cl.DeleteReview(ctx, created.ID))

	rs, err = cl.FetchReviews(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, rs)

	err = cl.UpdateReview(ctx, "missing", domain.ReviewUpdate{Comment: &comment})
	assert.Equal(t, http.StatusNotFound, transportError(t, err).StatusCode)
}

func TestFetchProductsWithoutArray(t *testing.T) {
	srv := newRawServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"items":[]}}`))
	})
	cl := newClient(t, srv.URL)

	_, err := cl.FetchProducts(context.Background())
	require.ErrorIs(t, err, domain.ErrNoProducts)
}

func TestLenientDecoding(t *testing.T) {
	srv := newRawServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{
			"id":"1","name":"Widget","price":"12.50",
			"quantityOnHand":"7","createdAt":"yesterday"
		}]}`))
	})
	cl := newClient(t, srv.URL)

	ps, err := cl.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, 12.5, ps[0].Price)
	assert.Equal(t, 7, ps[0].QuantityOnHand)
	assert.True(t, ps[0].CreatedAt.IsZero())
}

func TestFailureStatus(t *testing.T) {
	srv := newRawServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	})
	cl := newClient(t, srv.URL)

	err := cl.DeleteReview(context.Background(), "r1")
	te := transportError(t, err)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Empty(t, te.Message)
}

func TestEmptyWriteResponse(t *testing.T) {
	srv := newRawServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	cl := newClient(t, srv.URL)

	p, err := cl.CreateProduct(context.Background(), domain.Product{Name: "x"})
	require.NoError(t, err)
	assert.Empty(t, p.ID)
}

func TestRequestHeaders(t *testing.T) {
	var (
		reqID       string
		contentType string
		path        string
	)
	srv := newRawServer(t, func(w http.ResponseWriter, r *http.Request) {
		reqID = r.Header.Get("X-Request-ID")
		contentType = r.Header.Get("Content-Type")
		path = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	})
	cl := newClient(t, srv.URL)

	require.NoError(t, cl.UpdateReview(context.Background(), "a/b", domain.ReviewUpdate{}))
	assert.NotEmpty(t, reqID)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "/reviews/a%2Fb", path)
}

func TestItemPathKeepsIdentifier(t *testing.T) {
	var paths []string
	srv := newRawServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	cl := newClient(t, srv.URL)
	for _, id := range []string{"..", ".", "a/b", " x "} {
		require.NoError(t, cl.DeleteProduct(ctx, id))
	}
	assert.Equal(t, []string{
		"DELETE /products/..",
		"DELETE /products/.",
		"DELETE /products/a%2Fb",
		"DELETE /products/%20x%20",
	}, paths)

	paths = nil
	prefixed := newClient(t, srv.URL+"/api/v1/")
	require.NoError(t, prefixed.DeleteReview(ctx, "r 1"))
	assert.Equal(t, []string{"DELETE /api/v1/reviews/r%201"}, paths)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cl := newClient(t, url)
	err := cl.DeleteProduct(context.Background(), "p1")
	te := transportError(t, err)
	assert.Zero(t, te.StatusCode)
	assert.Error(t, te.Err)
}
