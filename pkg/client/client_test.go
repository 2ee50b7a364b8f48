package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gork-labs/paykit/internal/mockserver"
	"github.com/gork-labs/paykit/pkg/client"
	"github.com/gork-labs/paykit/pkg/models"
	"github.com/gork-labs/paykit/pkg/unions"
)

const testToken = "polar_oat_test"

func newTestClient(t *testing.T, opts ...client.Option) (*client.Client, *mockserver.Server) {
	t.Helper()
	mock := mockserver.New(mockserver.WithToken(testToken))
	srv := httptest.NewServer(mock)
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{BaseURL: srv.URL, Token: testToken}, opts...)
	require.NoError(t, err)
	return c, mock
}

func strPtr(s string) *string { return &s }

func TestCustomersLifecycle(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	created, err := c.Customers.Create(ctx, models.CustomerCreate{
		Email:    "ada@example.com",
		Name:     strPtr("Ada"),
		Metadata: models.Metadata{"seats": models.MetadataValueFromInt(3), "plan": models.MetadataValueFromString("pro")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "ada@example.com", created.Email)

	got, err := c.Customers.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	seats, ok := got.Metadata["seats"].AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 3.0, seats)

	updated, err := c.Customers.Update(ctx, created.ID, models.CustomerUpdate{Name: strPtr("Ada L.")})
	require.NoError(t, err)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Ada L.", *updated.Name)
	assert.NotNil(t, updated.ModifiedAt)

	page, err := c.Customers.List(ctx, client.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.TotalCount)

	require.NoError(t, c.Customers.Delete(ctx, created.ID))

	_, err = c.Customers.Get(ctx, created.ID)
	require.ErrorIs(t, err, client.ErrNotFound)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "ResourceNotFound", apiErr.Type)
}

func TestDuplicateCustomerIsUnprocessable(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	_, err := c.Customers.Create(ctx, models.CustomerCreate{Email: "dup@example.com"})
	require.NoError(t, err)
	_, err = c.Customers.Create(ctx, models.CustomerCreate{Email: "dup@example.com"})
	require.ErrorIs(t, err, client.ErrUnprocessable)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Len(t, apiErr.Validation, 1)
	assert.Equal(t, "email", apiErr.Validation[0].Path())
}

func TestRequestsAreValidatedBeforeSending(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL, Token: testToken})
	require.NoError(t, err)
	ctx := context.Background()

	customer := models.CheckoutCustomerFromNew(models.NewCustomer{Name: "no email"})
	_, err = c.Checkouts.Create(ctx, models.CheckoutCreate{Products: []string{"prod_1"}, Customer: &customer})
	var verrs unions.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"customer.email"}, verrs.Paths())

	_, err = c.Events.Ingest(ctx, models.EventsIngest{})
	assert.Error(t, err)

	_, err = c.Meters.Create(ctx, models.MeterCreate{Name: "tokens", Filter: models.And()})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Paths(), "aggregation")

	_, err = c.Customers.Get(ctx, "")
	assert.ErrorIs(t, err, client.ErrMissingID)

	_, err = c.Customers.Get(ctx, "..")
	assert.ErrorIs(t, err, client.ErrInvalidID)

	assert.Zero(t, hits.Load())
}

func TestCheckoutCustomerVariants(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	product, err := c.Products.Create(ctx, models.ProductCreate{
		Name:   "Pro plan",
		Prices: []models.PriceCreate{models.FixedPrice(2500, "eur")},
	})
	require.NoError(t, err)

	newCustomer := models.CheckoutCustomerFromNew(models.NewCustomer{Email: "grace@example.com", Name: "Grace"})
	checkout, err := c.Checkouts.Create(ctx, models.CheckoutCreate{
		Products: []string{product.ID},
		Customer: &newCustomer,
	})
	require.NoError(t, err)
	require.NotNil(t, checkout.CustomerID)
	assert.Equal(t, models.CheckoutStatusOpen, checkout.Status)
	require.NotNil(t, checkout.Amount)
	assert.Equal(t, int64(2500), *checkout.Amount)

	attach := models.CheckoutCustomerFromAttachExisting(models.AttachExistingCustomer{CustomerID: *checkout.CustomerID})
	second, err := c.Checkouts.Create(ctx, models.CheckoutCreate{Products: []string{product.ID}, Customer: &attach})
	require.NoError(t, err)
	assert.Equal(t, *checkout.CustomerID, *second.CustomerID)

	fetched, err := c.Checkouts.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, fetched.ID)

	unknown := models.CheckoutCustomerFromAttachExisting(models.AttachExistingCustomer{CustomerID: "cus_missing"})
	_, err = c.Checkouts.Create(ctx, models.CheckoutCreate{Products: []string{product.ID}, Customer: &unknown})
	require.ErrorIs(t, err, client.ErrUnprocessable)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "customer.customer_id", apiErr.Validation[0].Path())
}

func TestMeterFilterRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	filter := models.Filter{
		Conjunction: models.FilterConjunctionAnd,
		Clauses: models.FilterClausesFromFilters([]models.Filter{{
			Conjunction: models.FilterConjunctionOr,
			Clauses: models.FilterClausesFromFilters([]models.Filter{
				models.And(models.FilterCondition{Key: "model", Operator: models.FilterOperatorEq, Value: models.MetadataValueFromString("gpt-4o")}),
				models.And(models.FilterCondition{Key: "cached", Operator: models.FilterOperatorEq, Value: models.MetadataValueFromBoolean(true)}),
			}),
		}}),
	}
	created, err := c.Meters.Create(ctx, models.MeterCreate{
		Name:        "LLM tokens",
		Filter:      filter,
		Aggregation: models.Aggregate(models.AggregationFuncSum, "tokens"),
	})
	require.NoError(t, err)

	got, err := c.Meters.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, filter, got.Filter)
	assert.Equal(t, 3, got.Filter.Depth())
	require.NotNil(t, got.Aggregation.B)
	assert.Equal(t, "tokens", got.Aggregation.B.Property)

	page, err := c.Meters.List(ctx, client.ListParams{Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "LLM tokens", page.Items[0].Name)
}

func TestEventsIngest(t *testing.T) {
	ctx := context.Background()
	c, mock := newTestClient(t)

	customer, err := c.Customers.Create(ctx, models.CustomerCreate{Email: "ops@example.com"})
	require.NoError(t, err)

	resp, err := c.Events.Ingest(ctx, models.EventsIngest{Events: []models.EventCreate{
		models.EventCreateFromCustomer(models.EventCreateCustomer{Name: "tokens", CustomerID: customer.ID}),
		models.EventCreateFromExternalCustomer(models.EventCreateExternalCustomer{
			Name:               "tokens",
			ExternalCustomerID: "user_42",
			Metadata:           models.Metadata{"count": models.MetadataValueFromInt(12)},
		}),
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Inserted)

	events := mock.Events()
	require.Len(t, events, 2)
	assert.True(t, events[0].IsCustomer())
	assert.True(t, events[1].IsExternalCustomer())

	_, err = c.Events.Ingest(ctx, models.EventsIngest{Events: []models.EventCreate{
		models.EventCreateFromCustomer(models.EventCreateCustomer{Name: "tokens", CustomerID: "missing"}),
	}})
	assert.ErrorIs(t, err, client.ErrUnprocessable)
}

func TestProductPrices(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	minimum := int64(500)
	product, err := c.Products.Create(ctx, models.ProductCreate{
		Name: "Donation",
		Prices: []models.PriceCreate{
			models.PriceCreateFromCustom(models.CustomPriceCreate{AmountType: models.PriceAmountTypeCustom, MinimumAmount: &minimum}),
			models.FreePrice(),
		},
	})
	require.NoError(t, err)

	got, err := c.Products.Get(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Prices, 2)
	assert.Equal(t, models.PriceAmountTypeCustom, got.Prices[0].AmountType)
	assert.Equal(t, &minimum, got.Prices[0].MinimumAmount)
	assert.Equal(t, models.PriceAmountTypeFree, got.Prices[1].AmountType)
}

func TestPagerWalksAllPages(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	for i := 0; i < 25; i++ {
		_, err := c.Customers.Create(ctx, models.CustomerCreate{Email: fmt.Sprintf("user%02d@example.com", i)})
		require.NoError(t, err)
	}

	pager := c.Customers.Pager(client.ListParams{Limit: 10})
	pages := 0
	var emails []string
	for pager.Next(ctx) {
		pages++
		for _, customer := range pager.Page().Items {
			emails = append(emails, customer.Email)
		}
	}
	require.NoError(t, pager.Err())
	assert.Equal(t, 3, pages)
	require.Len(t, emails, 25)
	assert.Equal(t, "user00@example.com", emails[0])
	assert.Equal(t, "user24@example.com", emails[24])

	all, err := c.Customers.Pager(client.ListParams{Page: 2, Limit: 10}).All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 15)
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(mockserver.WithToken(testToken)))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL, Token: "wrong"})
	require.NoError(t, err)

	_, err = c.Meters.List(context.Background(), client.ListParams{})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestRequestHeaders(t *testing.T) {
	headers := make(chan http.Header, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"inserted":1}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL, Token: testToken, UserAgent: "paykit-test"}, client.WithIdempotencyKeys())
	require.NoError(t, err)

	body := models.EventsIngest{Events: []models.EventCreate{
		models.EventCreateFromExternalCustomer(models.EventCreateExternalCustomer{Name: "tokens", ExternalCustomerID: "u1"}),
	}}

	ctx := context.Background()
	_, err = c.Events.Ingest(ctx, body)
	require.NoError(t, err)
	_, err = c.Events.Ingest(ctx, body)
	require.NoError(t, err)
	_, err = c.Events.Ingest(client.ContextWithIdempotencyKey(ctx, "fixed-key"), body)
	require.NoError(t, err)

	first, second, third := <-headers, <-headers, <-headers
	assert.Equal(t, "Bearer "+testToken, first.Get("Authorization"))
	assert.Equal(t, "paykit-test", first.Get("User-Agent"))
	assert.Equal(t, "application/json", first.Get("Content-Type"))
	assert.NotEmpty(t, first.Get("Idempotency-Key"))
	assert.NotEqual(t, first.Get("Idempotency-Key"), second.Get("Idempotency-Key"))
	assert.Equal(t, "fixed-key", third.Get("Idempotency-Key"))
}

func TestUnknownResponseShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m1","name":"x","filter":{"conjunction":"and","clauses":[]},"aggregation":{"func":"median","property":"x"}}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Meters.Get(context.Background(), "m1")
	var unknown *unions.UnknownShapeError
	require.ErrorAs(t, err, &unknown)
	assert.Len(t, unknown.Attempts, 3)
	assert.False(t, errors.Is(err, client.ErrNotFound))
}
