package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pricenator/internal/models"
	"pricenator/internal/util"

	"go.uber.org/zap"
)

// PriceService applies the fixed price increment to products purchased in
// an order. One increment per line item entry, regardless of quantity.
type PriceService struct {
	catalog      Catalog
	updateAmount float64
	logger       *zap.Logger
}

// NewPriceService creates a new price service
func NewPriceService(catalog Catalog, updateAmount float64) *PriceService {
	return &PriceService{
		catalog:      catalog,
		updateAmount: updateAmount,
		logger:       util.GetLogger(),
	}
}

// ProcessOrder bumps the price of every product referenced by the order's
// line items. Line items without a catalog reference are skipped. Items fan
// out concurrently; the result slice matches the order of the referenced
// line items in the input. Per-product failures are captured in the results
// and never abort sibling items. Only an orchestration failure returns an
// error.
func (ps *PriceService) ProcessOrder(ctx context.Context, order *models.Order) ([]models.PriceUpdateResult, error) {
	ctx, span := util.StartSpan(ctx, "PriceService.ProcessOrder")
	defer span.End()

	if order == nil {
		return nil, fmt.Errorf("nil order")
	}

	productIDs := make([]string, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		if item.CatalogReference == nil || item.CatalogReference.ProductID == "" {
			ps.logger.Debug("Line item has no catalog reference, skipping",
				zap.String("order_id", order.OrderID))
			continue
		}
		productIDs = append(productIDs, item.CatalogReference.ProductID)
	}

	if len(productIDs) == 0 {
		ps.logger.Info("No usable line items in order",
			zap.String("order_id", order.OrderID))
		return []models.PriceUpdateResult{}, nil
	}

	ps.logger.Info("Processing order line items",
		zap.String("order_id", order.OrderID),
		zap.Int("count", len(productIDs)))

	results := make([]models.PriceUpdateResult, len(productIDs))
	var wg sync.WaitGroup
	for i, productID := range productIDs {
		wg.Add(1)
		go func(i int, productID string) {
			defer wg.Done()
			results[i] = ps.BumpPrice(ctx, productID)
		}(i, productID)
	}
	wg.Wait()

	return results, nil
}

// BumpPrice applies one fixed increment to a product's price. A missing
// price on the catalog record counts as zero. All failures are reported in
// the result, never returned.
func (ps *PriceService) BumpPrice(ctx context.Context, productID string) models.PriceUpdateResult {
	ctx, span := util.StartSpan(ctx, "PriceService.BumpPrice")
	defer span.End()

	start := time.Now()
	defer func() {
		util.PriceUpdateLatency.Observe(time.Since(start).Seconds())
	}()

	result := models.PriceUpdateResult{ProductID: productID}

	product, err := ps.catalog.GetProduct(ctx, productID)
	if errors.Is(err, ErrProductNotFound) {
		ps.logger.Warn("Product not found in catalog",
			zap.String("product_id", productID))
		util.PriceUpdatesFailedTotal.WithLabelValues("product_not_found").Inc()
		result.Outcome = models.OutcomeProductNotFound
		return result
	}
	if err != nil {
		ps.logger.Error("Failed to read product from catalog",
			zap.String("product_id", productID),
			zap.Error(err))
		util.PriceUpdatesFailedTotal.WithLabelValues("catalog_read").Inc()
		result.Outcome = models.OutcomeUpdateFailed
		result.Error = err.Error()
		return result
	}

	currentPrice := product.Price
	newPrice := currentPrice + ps.updateAmount
	result.PreviousPrice = currentPrice
	result.NewPrice = newPrice

	if err := ps.catalog.UpdateProductPrice(ctx, productID, newPrice); err != nil {
		ps.logger.Error("Failed to update product price",
			zap.String("product_id", productID),
			zap.Float64("new_price", newPrice),
			zap.Error(err))
		util.PriceUpdatesFailedTotal.WithLabelValues("catalog_write").Inc()
		result.Outcome = models.OutcomeUpdateFailed
		result.Error = err.Error()
		return result
	}

	util.PriceUpdatesTotal.Inc()
	ps.logger.Info("Price updated",
		zap.String("product_id", productID),
		zap.Float64("previous_price", currentPrice),
		zap.Float64("new_price", newPrice))

	result.Outcome = models.OutcomeUpdated
	return result
}
