package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/catalog/internal/core/catalog"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/form"
	"github.com/niksmo/catalog/internal/core/reporter"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/niksmo/catalog/internal/core/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogAPI) FetchProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogAPI) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogAPI) UpdateProduct(
	ctx context.Context, id string, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogAPI) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogAPI) FetchReviews(
	ctx context.Context, productID string,
) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	rs, _ := args.Get(0).([]domain.Review)
	return rs, args.Error(1)
}

func (m *MockCatalogAPI) CreateReview(
	ctx context.Context, r domain.Review,
) (domain.Review, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockCatalogAPI) UpdateReview(
	ctx context.Context, id string, u domain.ReviewUpdate,
) error {
	return m.Called(ctx, id, u).Error(0)
}

func (m *MockCatalogAPI) DeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishSubmission(
	ctx context.Context, evt domain.SubmissionEvent,
) error {
	return m.Called(ctx, evt).Error(0)
}

type fixture struct {
	api     *MockCatalogAPI
	events  *MockPublisher
	catalog *catalog.Store
	service service.Service
}

func newFixture() fixture {
	api := new(MockCatalogAPI)
	events := new(MockPublisher)
	store := catalog.New(api)
	return fixture{
		api:     api,
		events:  events,
		catalog: store,
		service: service.New(api, validation.New(), store, events),
	}
}

func (f fixture) expectEvent(op domain.Operation, succeeded bool) {
	f.events.On("PublishSubmission", mock.Anything,
		mock.MatchedBy(func(evt domain.SubmissionEvent) bool {
			return evt.Op == op && evt.Succeeded == succeeded && evt.ID != ""
		}),
	).Return(nil).Once()
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Created", func(t *testing.T) {
		fx := newFixture()
		f := form.NewProductForm()
		require.NoError(t, f.Set("name", "Widget"))

		created := form.DefaultProduct()
		created.ID = "p1"
		created.Name = "Widget"
		fx.api.On("CreateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
			return p.Name == "Widget"
		})).Return(created, nil).Once()
		fx.expectEvent(domain.OpCreateProduct, true)

		err := fx.service.CreateProduct(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, form.Succeeded, f.State())
		assert.Equal(t, "Product created successfully!", f.Report().SuccessMessage())
		assert.Empty(t, f.Report().ErrorMessage())
		assert.Equal(t, form.DefaultProduct(), f.Draft.Value())
		assert.Equal(t, []domain.Product{created}, fx.catalog.Visible())
		fx.api.AssertExpectations(t)
		fx.events.AssertExpectations(t)
	})

	t.Run("ValidationStopsSubmission", func(t *testing.T) {
		fx := newFixture()
		f := form.NewProductForm()
		require.NoError(t, f.Set("price", "0"))
		require.Error(t, f.Set("minimumQuantity", "lots"))
		fx.expectEvent(domain.OpCreateProduct, false)

		err := fx.service.CreateProduct(ctx, f)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.True(t, ve.Has("price"))
		assert.True(t, ve.Has("minimumQuantity"))
		assert.Equal(t, form.Failed, f.State())
		assert.Equal(t, ve.Error(), f.Report().ErrorMessage())
		assert.Equal(t, 0.0, f.Draft.Value().Price)
		fx.api.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("InProgress", func(t *testing.T) {
		fx := newFixture()
		f := form.NewProductForm()
		require.True(t, f.Begin())

		err := fx.service.CreateProduct(ctx, f)
		require.ErrorIs(t, err, domain.ErrInProgress)
		assert.Equal(t, "A submission is already in progress.",
			f.Report().ErrorMessage())
		fx.api.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		fx.events.AssertNotCalled(t, "PublishSubmission", mock.Anything, mock.Anything)
	})

	t.Run("PublishFailureKeepsOutcome", func(t *testing.T) {
		fx := newFixture()
		f := form.NewProductForm()
		fx.api.On("CreateProduct", ctx, mock.Anything).
			Return(domain.Product{}, nil).Once()
		fx.events.On("PublishSubmission", mock.Anything, mock.Anything).
			Return(errors.New("broker down")).Once()

		require.NoError(t, fx.service.CreateProduct(ctx, f))
		assert.Equal(t, "Product created successfully!", f.Report().SuccessMessage())
		require.Len(t, fx.catalog.Products(), 1)
		assert.Equal(t, "Sample Product", fx.catalog.Products()[0].Name)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingID", func(t *testing.T) {
		fx := newFixture()
		f := form.NewProductForm()
		fx.expectEvent(domain.OpUpdateProduct, false)

		err := fx.service.UpdateProduct(ctx, f)
		require.ErrorIs(t, err, domain.ErrMissingID)
		assert.Equal(t, "Product ID is required to update a product.",
			f.Report().ErrorMessage())
		fx.api.AssertNotCalled(t, "UpdateProduct",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Updated", func(t *testing.T) {
		fx := newFixture()
		fx.catalog.SetProducts([]domain.Product{{ID: "p1", Name: "Old"}})

		f := form.NewProductForm()
		f.SetID("p1")
		require.NoError(t, f.Set("name", "New"))
		fx.api.On("UpdateProduct", ctx, "p1", mock.Anything).
			Return(domain.Product{}, nil).Once()
		fx.expectEvent(domain.OpUpdateProduct, true)

		require.NoError(t, fx.service.UpdateProduct(ctx, f))
		assert.Equal(t, "Product updated successfully!", f.Report().SuccessMessage())
		require.Len(t, fx.catalog.Products(), 1)
		assert.Equal(t, "New", fx.catalog.Products()[0].Name)
		assert.Equal(t, "p1", fx.catalog.Products()[0].ID)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		fx := newFixture()
		tg := form.NewTarget()
		tg.SetID("missing")
		fx.api.On("DeleteProduct", ctx, "missing").Return(
			&domain.TransportError{StatusCode: 404, Message: "not found"},
		).Once()
		fx.expectEvent(domain.OpDeleteProduct, false)

		err := fx.service.DeleteProduct(ctx, tg)
		require.Error(t, err)
		assert.Equal(t, "not found", tg.Report().ErrorMessage())
		assert.Equal(t, form.Failed, tg.State())
		assert.Equal(t, "missing", tg.ID())
	})

	t.Run("NetworkFailure", func(t *testing.T) {
		fx := newFixture()
		tg := form.NewTarget()
		tg.SetID("p1")
		fx.api.On("DeleteProduct", ctx, "p1").Return(
			&domain.TransportError{Err: errors.New("connection refused")},
		).Once()
		fx.expectEvent(domain.OpDeleteProduct, false)

		require.Error(t, fx.service.DeleteProduct(ctx, tg))
		assert.Equal(t, "Failed to delete product.", tg.Report().ErrorMessage())
	})

	t.Run("DotSegmentID", func(t *testing.T) {
		for _, id := range []string{".", "..", " .. "} {
			fx := newFixture()
			tg := form.NewTarget()
			tg.SetID(id)
			fx.expectEvent(domain.OpDeleteProduct, false)

			err := fx.service.DeleteProduct(ctx, tg)
			require.ErrorIs(t, err, domain.ErrInvalidID, id)
			assert.Equal(t, "Identifier is not valid.", tg.Report().ErrorMessage())
			fx.api.AssertNumberOfCalls(t, "DeleteProduct", 0)
		}
	})

	t.Run("PaddedID", func(t *testing.T) {
		fx := newFixture()
		tg := form.NewTarget()
		tg.SetID(" p1 ")
		fx.api.On("DeleteProduct", ctx, "p1").Return(nil).Once()
		fx.expectEvent(domain.OpDeleteProduct, true)

		require.NoError(t, fx.service.DeleteProduct(ctx, tg))
		fx.api.AssertExpectations(t)
	})

	t.Run("Deleted", func(t *testing.T) {
		fx := newFixture()
		fx.catalog.SetProducts([]domain.Product{{ID: "p1"}, {ID: "p2"}})
		tg := form.NewTarget()
		tg.SetID("p1")
		fx.api.On("DeleteProduct", ctx, "p1").Return(nil).Once()
		fx.expectEvent(domain.OpDeleteProduct, true)

		require.NoError(t, fx.service.DeleteProduct(ctx, tg))
		assert.Equal(t, "Product deleted successfully!", tg.Report().SuccessMessage())
		assert.Empty(t, tg.ID())
		assert.Equal(t, []domain.Product{{ID: "p2"}}, fx.catalog.Products())
	})
}

func TestReviews(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateResetsDraft", func(t *testing.T) {
		fx := newFixture()
		f := form.NewReviewForm()
		require.NoError(t, f.Set("productId", "p1"))
		require.NoError(t, f.Set("rating", "5"))
		require.NoError(t, f.Set("reviewerName", "Ann"))
		require.NoError(t, f.Set("comment", "Great"))

		want := domain.Review{
			ProductID: "p1", Rating: 5, ReviewerName: "Ann", Comment: "Great",
		}
		fx.api.On("CreateReview", ctx, want).Return(domain.Review{}, nil).Once()
		fx.expectEvent(domain.OpCreateReview, true)

		require.NoError(t, fx.service.CreateReview(ctx, f))
		assert.Equal(t, "Review created successfully!", f.Report().SuccessMessage())
		assert.Equal(t, form.DefaultReview(), f.Draft.Value())
	})

	t.Run("UpdateWithoutID", func(t *testing.T) {
		fx := newFixture()
		f := form.NewReviewUpdateForm()
		require.NoError(t, f.Set("comment", "Better"))
		fx.expectEvent(domain.OpUpdateReview, false)

		err := fx.service.UpdateReview(ctx, f)
		var ge *domain.GuardError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, "Review ID is required to update a review.",
			f.Report().ErrorMessage())
		fx.api.AssertNumberOfCalls(t, "UpdateReview", 0)
	})

	t.Run("UpdateSendsPresentFields", func(t *testing.T) {
		fx := newFixture()
		f := form.NewReviewUpdateForm()
		f.SetID("r1")
		require.NoError(t, f.Set("rating", "4"))
		fx.api.On("UpdateReview", ctx, "r1", mock.MatchedBy(
			func(u domain.ReviewUpdate) bool {
				return u.Rating != nil && *u.Rating == 4 &&
					u.Comment == nil && u.ReviewerName == nil
			},
		)).Return(nil).Once()
		fx.expectEvent(domain.OpUpdateReview, true)

		require.NoError(t, fx.service.UpdateReview(ctx, f))
		assert.Equal(t, "Review updated successfully!", f.Report().SuccessMessage())
	})

	t.Run("DeleteWithoutID", func(t *testing.T) {
		fx := newFixture()
		tg := form.NewTarget()
		fx.expectEvent(domain.OpDeleteReview, false)

		require.ErrorIs(t, fx.service.DeleteReview(ctx, tg), domain.ErrMissingID)
		assert.Equal(t, "Review ID is required to delete a review.",
			tg.Report().ErrorMessage())
	})

	t.Run("List", func(t *testing.T) {
		fx := newFixture()
		tg := form.NewTarget()
		tg.SetID("p1")
		reviews := []domain.Review{{ID: "r1", ProductID: "p1", Rating: 5}}
		fx.api.On("FetchReviews", ctx, "p1").Return(reviews, nil).Once()

		got, err := fx.service.Reviews(ctx, tg)
		require.NoError(t, err)
		assert.Equal(t, reviews, got)
	})

	t.Run("ListFailure", func(t *testing.T) {
		fx := newFixture()
		tg := form.NewTarget()
		tg.SetID("p1")
		fx.api.On("FetchReviews", ctx, "p1").
			Return(nil, &domain.TransportError{StatusCode: 500}).Once()

		got, err := fx.service.Reviews(ctx, tg)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, "Failed to fetch reviews.", tg.Report().ErrorMessage())
	})

	t.Run("ListWithoutProduct", func(t *testing.T) {
		fx := newFixture()
		tg := form.NewTarget()

		_, err := fx.service.Reviews(ctx, tg)
		require.ErrorIs(t, err, domain.ErrMissingID)
		assert.Equal(t, "Please provide a valid product ID.",
			tg.Report().ErrorMessage())
		fx.api.AssertNotCalled(t, "FetchReviews", mock.Anything, mock.Anything)
	})
}

func TestProduct(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	var report reporter.Slot

	fx.api.On("FetchProduct", ctx, "p1").
		Return(domain.Product{ID: "p1", Name: "Widget"}, nil).Once()
	p, err := fx.service.Product(ctx, "p1", &report)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)

	fx.api.On("FetchProduct", ctx, "p2").
		Return(domain.Product{}, &domain.TransportError{StatusCode: 404}).Once()
	_, err = fx.service.Product(ctx, "p2", &report)
	require.Error(t, err)
	assert.Equal(t, "Failed to load product. Please try again later.",
		report.ErrorMessage())
}
