package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltshop/backend/internal/infrastructure/cache"
)

func saleRequestBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"customer_id":    uuid.New().String(),
		"business_date":  "2026-03-15",
		"payment_method": "CASH",
		"sale_items": []gin.H{
			{
				"purchase_item_id": uuid.New().String(),
				"product_id":       uuid.New().String(),
				"quantity":         1,
				"sale_price":       120.50,
			},
		},
	})
	require.NoError(t, err)
	return body
}

func TestSaleHandler_Create_DuplicateIdempotencyKey(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	// Claim the key up front to simulate a retry of a request that was
	// already handled
	firstUse, err := store.MarkProcessed(context.Background(), "pos-42-receipt-7", time.Minute)
	require.NoError(t, err)
	require.True(t, firstUse)

	handler := NewSaleHandler(nil, store)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewReader(saleRequestBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(IdempotencyKeyHeader, "pos-42-receipt-7")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_REQUEST")
}

func TestSaleHandler_Create_RejectsMalformedBody(t *testing.T) {
	handler := NewSaleHandler(nil, nil)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	t.Run("missing items", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"customer_id":    uuid.New().String(),
			"business_date":  "2026-03-15",
			"payment_method": "CASH",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad business date", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"customer_id":    uuid.New().String(),
			"business_date":  "15/03/2026",
			"payment_method": "CASH",
			"sale_items": []gin.H{
				{
					"purchase_item_id": uuid.New().String(),
					"product_id":       uuid.New().String(),
					"quantity":         1,
					"sale_price":       120.50,
				},
			},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "business date")
	})
}
