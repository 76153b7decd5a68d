package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogClientGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/products/abc", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product":{"id":"abc","price":10.50,"formatted_price":"$10.50"}}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, "", 5*time.Second)

	product, err := client.GetProduct(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", product.ID)
	assert.Equal(t, 10.50, product.Price)
}

func TestCatalogClientGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, "", 5*time.Second)

	_, err := client.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogClientUpdateProductPrice(t *testing.T) {
	var body updateProductRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/products/abc", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, "", 5*time.Second)

	require.NoError(t, client.UpdateProductPrice(context.Background(), "abc", 11.00))

	assert.Equal(t, "abc", body.Product.ID)
	assert.Equal(t, 11.00, body.Product.Price)
	assert.Equal(t, "$11.00", body.Product.FormattedPrice)
}

func TestCatalogClientUpdateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, "", 5*time.Second)

	err := client.UpdateProductPrice(context.Background(), "abc", 11.00)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogClientSendsAuthToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product":{"id":"abc","price":1}}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(srv.URL, "secret-token", 5*time.Second)

	_, err := client.GetProduct(context.Background(), "abc")
	require.NoError(t, err)
}
