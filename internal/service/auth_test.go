package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	egotel "github.com/javakishore-veleti/eventsgrasp/internal/adapter/otel"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/customer"
)

func newAuthSvc(t *testing.T) (*AuthService, *mockStore, *CustomerCache) {
	t.Helper()
	store := newMockStore()
	cc := newLocalCustomerCache(t)
	return NewAuthService(store, cc, nil), store, cc
}

func TestAuthenticate(t *testing.T) {
	svc, store, _ := newAuthSvc(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	store.putCustomer(customer.Customer{ID: 1, Email: "a@example.com", IsActive: true})
	store.putCustomer(customer.Customer{ID: 2, Email: "b@example.com", IsActive: false})
	store.sessions["live"] = customer.Session{ID: 1, CustomerID: 1, Token: "live", ExpiresAt: &future}
	store.sessions["forever"] = customer.Session{ID: 2, CustomerID: 1, Token: "forever"}
	store.sessions["stale"] = customer.Session{ID: 3, CustomerID: 1, Token: "stale", ExpiresAt: &past}
	store.sessions["inactive"] = customer.Session{ID: 4, CustomerID: 2, Token: "inactive"}

	tests := []struct {
		token   string
		wantID  int64
		wantMsg string
	}{
		{token: "live", wantID: 1},
		{token: "forever", wantID: 1},
		{token: "", wantMsg: MsgAuthRequired},
		{token: "unknown", wantMsg: MsgInvalidToken},
		{token: "stale", wantMsg: MsgInvalidToken},
		{token: "inactive", wantMsg: MsgCustomerInactive},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			c, err := svc.Authenticate(context.Background(), tt.token)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.Equal(t, tt.wantMsg, domain.Reason(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, c.ID)
		})
	}
}

func TestValidateCustomerPopulatesCache(t *testing.T) {
	svc, store, cc := newAuthSvc(t)
	ctx := context.Background()
	store.putCustomer(customer.Customer{ID: 5, IsActive: true})

	_, err := svc.ValidateCustomer(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, customer.Valid, cc.IsValid(ctx, 5))

	_, err = svc.ValidateCustomer(ctx, 6)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, customer.Invalid, cc.IsValid(ctx, 6))
}

func TestValidateCustomerCachedInvalidSkipsLookup(t *testing.T) {
	svc, store, cc := newAuthSvc(t)
	ctx := context.Background()
	store.putCustomer(customer.Customer{ID: 3, IsActive: true})
	cc.SetValid(ctx, 3, false)

	_, err := svc.ValidateCustomer(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, store.customerLookups.Load())
}

func TestValidateCustomerDeletedAfterCaching(t *testing.T) {
	svc, store, cc := newAuthSvc(t)
	ctx := context.Background()
	store.putCustomer(customer.Customer{ID: 8, IsActive: true})

	_, err := svc.ValidateCustomer(ctx, 8)
	require.NoError(t, err)

	store.deleteCustomer(8)

	_, err = svc.ValidateCustomer(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 8))
}

func TestValidateCustomerCollapsesConcurrentMisses(t *testing.T) {
	svc, store, _ := newAuthSvc(t)
	store.putCustomer(customer.Customer{ID: 11, IsActive: true})
	store.lookupDelay = 50 * time.Millisecond

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ValidateCustomer(context.Background(), 11)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Less(t, store.customerLookups.Load(), int64(n))
}

func TestValidateCustomerBackendFailure(t *testing.T) {
	svc, store, cc := newAuthSvc(t)
	ctx := context.Background()
	store.customerErr = errors.New("connection reset by peer")

	_, err := svc.ValidateCustomer(ctx, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.NotContains(t, err.Error(), "connection reset")
	assert.Equal(t, customer.Unknown, cc.IsValid(ctx, 12))

	store.sessionErr = errors.New("timeout")
	_, err = svc.Authenticate(ctx, "any")
	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestAuthenticateRecordsRejections(t *testing.T) {
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	m, err := egotel.NewMetrics()
	require.NoError(t, err)
	svc, _, _ := newAuthSvc(t)
	svc.SetMetrics(m)

	_, _ = svc.Authenticate(context.Background(), "")
	_, _ = svc.Authenticate(context.Background(), "unknown")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "eventsgrasp.auth.rejections" {
				continue
			}
			sum, ok := md.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), total)
}
