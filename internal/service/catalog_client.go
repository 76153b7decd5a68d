package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pricenator/internal/models"
	"pricenator/internal/util"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrProductNotFound reports that the catalog has no product with the
// requested ID.
var ErrProductNotFound = errors.New("product not found")

// Catalog is the slice of the catalog service contract this app consumes.
// The catalog owns product records; only the price field is ever written.
type Catalog interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	UpdateProductPrice(ctx context.Context, productID string, newPrice float64) error
}

// CatalogClient talks to the external catalog service over HTTP.
type CatalogClient struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(baseURL, apiKey string, timeout time.Duration) *CatalogClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &CatalogClient{
		http:   client,
		logger: util.GetLogger(),
	}
}

type productEnvelope struct {
	Product *models.Product `json:"product"`
}

// GetProduct retrieves a product by ID. Returns ErrProductNotFound when the
// catalog has no such product.
func (cc *CatalogClient) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogClient.GetProduct")
	defer span.End()

	var envelope productEnvelope
	resp, err := cc.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		Get(fmt.Sprintf("/v1/products/%s", productID))
	if err != nil {
		return nil, fmt.Errorf("catalog get product %s: %w", productID, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog get product %s: status %d", productID, resp.StatusCode())
	}
	if envelope.Product == nil {
		return nil, ErrProductNotFound
	}

	return envelope.Product, nil
}

type updateProductRequest struct {
	Product models.Product `json:"product"`
}

// UpdateProductPrice writes a new price for a product. The formatted
// display price is derived from the numeric price on the way out.
func (cc *CatalogClient) UpdateProductPrice(ctx context.Context, productID string, newPrice float64) error {
	ctx, span := util.StartSpan(ctx, "CatalogClient.UpdateProductPrice")
	defer span.End()

	body := updateProductRequest{
		Product: models.Product{
			ID:             productID,
			Price:          newPrice,
			FormattedPrice: models.FormatPrice(newPrice),
		},
	}

	resp, err := cc.http.R().
		SetContext(ctx).
		SetBody(body).
		Patch(fmt.Sprintf("/v1/products/%s", productID))
	if err != nil {
		return fmt.Errorf("catalog update product %s: %w", productID, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return ErrProductNotFound
	}
	if resp.IsError() {
		return fmt.Errorf("catalog update product %s: status %d", productID, resp.StatusCode())
	}

	cc.logger.Debug("Catalog price updated",
		zap.String("product_id", productID),
		zap.Float64("new_price", newPrice))
	return nil
}
