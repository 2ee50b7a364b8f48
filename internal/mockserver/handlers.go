package mockserver

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gork-labs/paykit/pkg/models"
	"github.com/gork-labs/paykit/pkg/unions"
)

const (
	defaultLimit    = 10
	maxLimit        = 100
	checkoutTTL     = time.Hour
	defaultCurrency = "usd"
)

type validatable interface {
	Validate() error
}

// decodeBody decodes and validates the request body into dst. On failure it
// writes the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeValidation(w, validationDetails("body", err)...)
		return false
	}
	if err := unions.Unmarshal(data, dst); err != nil {
		writeValidation(w, validationDetails("body", err)...)
		return false
	}
	if err := dst.Validate(); err != nil {
		writeValidation(w, validationDetails("body", err)...)
		return false
	}
	return true
}

// pageParams reads page and limit from the query string.
func pageParams(w http.ResponseWriter, r *http.Request) (page, limit int, ok bool) {
	page, limit = 1, defaultLimit
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
		max  int
	}{{"page", &page, 0}, {"limit", &limit, maxLimit}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || (p.max > 0 && n > p.max) {
			writeValidation(w, validationDetail{Loc: []any{"query", p.name}, Msg: "Input should be a valid page value", Type: "int_parsing"})
			return 0, 0, false
		}
		*p.dst = n
	}
	return page, limit, true
}

func paginate[T any](ids []string, page, limit int, get func(string) T) models.ListResource[T] {
	total := len(ids)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := min(start+limit, total)

	items := make([]T, 0, end-start)
	for _, id := range ids[start:end] {
		items = append(items, get(id))
	}
	return models.ListResource[T]{
		Items: items,
		Pagination: models.Pagination{
			TotalCount: total,
			MaxPage:    (total + limit - 1) / limit,
		},
	}
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	s.mu.RLock()
	resp := paginate(s.customerOrder, page, limit, func(id string) models.Customer { return *s.customers[id] })
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	customer, ok := s.customers[chi.URLParam(r, "id")]
	if ok {
		copied := *customer
		customer = &copied
	}
	s.mu.RUnlock()
	if !ok {
		writeNotFound(w, "Customer")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var body models.CustomerCreate
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.customerByEmail(body.Email) != nil {
		writeValidation(w, validationDetail{
			Loc:  []any{"body", "email"},
			Msg:  "A customer with this email address already exists.",
			Type: "value_error",
		})
		return
	}
	customer := s.addCustomer(body.Email, body.Name, body.ExternalID, body.BillingAddress, body.Metadata)
	writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var body models.CustomerUpdate
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.customers[chi.URLParam(r, "id")]
	if !ok {
		writeNotFound(w, "Customer")
		return
	}
	if body.Email != nil && !strings.EqualFold(*body.Email, customer.Email) {
		if s.customerByEmail(*body.Email) != nil {
			writeValidation(w, validationDetail{
				Loc:  []any{"body", "email"},
				Msg:  "A customer with this email address already exists.",
				Type: "value_error",
			})
			return
		}
		customer.Email = *body.Email
		customer.EmailVerified = false
	}
	if body.Name != nil {
		customer.Name = body.Name
	}
	if body.ExternalID != nil {
		customer.ExternalID = body.ExternalID
	}
	if body.BillingAddress != nil {
		customer.BillingAddress = body.BillingAddress
	}
	if body.Metadata != nil {
		customer.Metadata = body.Metadata
	}
	now := s.now().UTC()
	customer.ModifiedAt = &now
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		writeNotFound(w, "Customer")
		return
	}
	delete(s.customers, id)
	for i, existing := range s.customerOrder {
		if existing == id {
			s.customerOrder = append(s.customerOrder[:i], s.customerOrder[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// customerByEmail must be called with s.mu held.
func (s *Server) customerByEmail(email string) *models.Customer {
	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			return c
		}
	}
	return nil
}

// addCustomer must be called with s.mu held for writing.
func (s *Server) addCustomer(email string, name, externalID *string, address *models.Address, metadata models.Metadata) *models.Customer {
	customer := &models.Customer{
		ID:             uuid.NewString(),
		CreatedAt:      s.now().UTC(),
		Metadata:       metadata,
		ExternalID:     externalID,
		Email:          email,
		Name:           name,
		BillingAddress: address,
		OrganizationID: s.organizationID,
	}
	s.customers[customer.ID] = customer
	s.customerOrder = append(s.customerOrder, customer.ID)
	return customer
}

func (s *Server) createCheckout(w http.ResponseWriter, r *http.Request) {
	var body models.CheckoutCreate
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []validationDetail
	for i, id := range body.Products {
		if _, ok := s.products[id]; !ok {
			missing = append(missing, validationDetail{
				Loc:  []any{"body", "products", i},
				Msg:  "Product does not exist.",
				Type: "value_error",
			})
		}
	}
	if len(missing) > 0 {
		writeValidation(w, missing...)
		return
	}

	var customerID *string
	if body.Customer != nil {
		switch {
		case body.Customer.IsAttachExisting():
			attach, _ := body.Customer.AsAttachExisting()
			if _, ok := s.customers[attach.CustomerID]; !ok {
				writeValidation(w, validationDetail{
					Loc:  []any{"body", "customer", "customer_id"},
					Msg:  "Customer does not exist.",
					Type: "value_error",
				})
				return
			}
			customerID = &attach.CustomerID
		case body.Customer.IsNew():
			create, _ := body.Customer.AsNew()
			customer := s.customerByEmail(create.Email)
			if customer == nil {
				customer = s.addCustomer(create.Email, optional(create.Name), optional(create.ExternalID), create.BillingAddress, body.CustomerMetadata)
			}
			customerID = &customer.ID
		}
	}

	product := s.products[body.Products[0]]
	amount, currency := body.Amount, (*string)(nil)
	if len(product.Prices) > 0 {
		price := product.Prices[0]
		if amount == nil {
			amount = price.PriceAmount
		}
		currency = optional(price.PriceCurrency)
	}

	now := s.now().UTC()
	secret := strings.ReplaceAll(uuid.NewString(), "-", "")
	checkout := &models.Checkout{
		ID:           uuid.NewString(),
		Status:       models.CheckoutStatusOpen,
		ClientSecret: secret,
		URL:          fmt.Sprintf("https://buy.polar.sh/%s", secret),
		ExpiresAt:    now.Add(checkoutTTL),
		Amount:       amount,
		Currency:     currency,
		ProductID:    product.ID,
		CustomerID:   customerID,
		Metadata:     body.Metadata,
		CreatedAt:    now,
	}
	if body.SuccessURL != nil {
		checkout.SuccessURL = *body.SuccessURL
	}
	s.checkouts[checkout.ID] = checkout
	writeJSON(w, http.StatusCreated, checkout)
}

func (s *Server) getCheckout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout, ok := s.checkouts[chi.URLParam(r, "id")]
	if !ok {
		writeNotFound(w, "Checkout")
		return
	}
	if checkout.Status == models.CheckoutStatusOpen && s.now().After(checkout.ExpiresAt) {
		checkout.Status = models.CheckoutStatusExpired
	}
	writeJSON(w, http.StatusOK, checkout)
}

func (s *Server) listMeters(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	s.mu.RLock()
	resp := paginate(s.meterOrder, page, limit, func(id string) models.Meter { return *s.meters[id] })
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMeter(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	meter, ok := s.meters[chi.URLParam(r, "id")]
	if ok {
		copied := *meter
		meter = &copied
	}
	s.mu.RUnlock()
	if !ok {
		writeNotFound(w, "Meter")
		return
	}
	writeJSON(w, http.StatusOK, meter)
}

func (s *Server) createMeter(w http.ResponseWriter, r *http.Request) {
	var body models.MeterCreate
	if !decodeBody(w, r, &body) {
		return
	}

	meter := &models.Meter{
		ID:             uuid.NewString(),
		Name:           body.Name,
		Filter:         body.Filter,
		Aggregation:    body.Aggregation,
		Metadata:       body.Metadata,
		OrganizationID: s.organizationID,
		CreatedAt:      s.now().UTC(),
	}

	s.mu.Lock()
	s.meters[meter.ID] = meter
	s.meterOrder = append(s.meterOrder, meter.ID)
	s.mu.Unlock()

	log.Debugw("meter created", "id", meter.ID, "aggregation", meter.Aggregation.Active(), "filter_depth", meter.Filter.Depth())
	writeJSON(w, http.StatusCreated, meter)
}

func (s *Server) ingestEvents(w http.ResponseWriter, r *http.Request) {
	var body models.EventsIngest
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var unknown []validationDetail
	for i, event := range body.Events {
		if ev, ok := event.AsCustomer(); ok {
			if _, exists := s.customers[ev.CustomerID]; !exists {
				unknown = append(unknown, validationDetail{
					Loc:  []any{"body", "events", i, "customer_id"},
					Msg:  "Customer does not exist.",
					Type: "value_error",
				})
			}
		}
	}
	if len(unknown) > 0 {
		writeValidation(w, unknown...)
		return
	}

	s.events = append(s.events, body.Events...)
	writeJSON(w, http.StatusOK, models.EventsIngestResponse{Inserted: len(body.Events)})
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var body models.ProductCreate
	if !decodeBody(w, r, &body) {
		return
	}

	now := s.now().UTC()
	product := &models.Product{
		ID:                uuid.NewString(),
		Name:              body.Name,
		Description:       body.Description,
		RecurringInterval: body.RecurringInterval,
		IsRecurring:       body.RecurringInterval != nil,
		Metadata:          body.Metadata,
		OrganizationID:    s.organizationID,
		CreatedAt:         now,
	}
	for _, create := range body.Prices {
		price := models.ProductPrice{ID: uuid.NewString(), ProductID: product.ID, CreatedAt: now, PriceCurrency: defaultCurrency}
		switch p := create.Value().(type) {
		case models.FixedPriceCreate:
			price.AmountType = models.PriceAmountTypeFixed
			price.PriceAmount = &p.PriceAmount
			if p.PriceCurrency != "" {
				price.PriceCurrency = p.PriceCurrency
			}
		case models.CustomPriceCreate:
			price.AmountType = models.PriceAmountTypeCustom
			price.MinimumAmount = p.MinimumAmount
			price.MaximumAmount = p.MaximumAmount
			price.PresetAmount = p.PresetAmount
			if p.PriceCurrency != "" {
				price.PriceCurrency = p.PriceCurrency
			}
		case models.FreePriceCreate:
			price.AmountType = models.PriceAmountTypeFree
			price.PriceCurrency = ""
		}
		product.Prices = append(product.Prices, price)
	}

	s.mu.Lock()
	s.products[product.ID] = product
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	product, ok := s.products[chi.URLParam(r, "id")]
	if ok {
		copied := *product
		product = &copied
	}
	s.mu.RUnlock()
	if !ok {
		writeNotFound(w, "Product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
