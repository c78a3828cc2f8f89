// Package catalog contains application services for the store catalog,
// including the vendor catalog sync.
package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/domain/catalog"
	"github.com/shelfbridge/backend/internal/domain/licensing"
	"github.com/shelfbridge/backend/internal/domain/settings"
	"github.com/shelfbridge/backend/internal/domain/shared"
	"github.com/shelfbridge/backend/internal/domain/shared/valueobject"
)

// SyncResult summarizes one catalog sync run
type SyncResult struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Trashed  int `json:"trashed"`
}

// SyncService imports the vendor product feed into the store catalog.
// Items are upserted by SKU; items without a purchasable single-license
// variant have no SKU and always create a fresh product.
type SyncService struct {
	productRepo catalog.ProductRepository
	options     settings.OptionRepository
	gateway     licensing.Gateway
	storage     ObjectStorageService
	covers      CoverFetcher
	logger      *zap.Logger
}

// NewSyncService creates a new SyncService. storage and covers may be nil,
// in which case cover images are skipped.
func NewSyncService(
	productRepo catalog.ProductRepository,
	options settings.OptionRepository,
	gateway licensing.Gateway,
	storage ObjectStorageService,
	covers CoverFetcher,
	logger *zap.Logger,
) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		productRepo: productRepo,
		options:     options,
		gateway:     gateway,
		storage:     storage,
		covers:      covers,
		logger:      logger,
	}
}

// Sync fetches the vendor feed and upserts every item into the catalog.
// A failure on one item is logged and does not halt the rest of the run.
// When only_vendor_products is on, products absent from the feed are trashed
// afterwards.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	items, err := s.gateway.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.options.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	syncedIDs := make(map[string]struct{}, len(items))

	for _, item := range items {
		product, created, err := s.syncItem(ctx, item, snapshot)
		if err != nil {
			s.logger.Warn("catalog item sync failed",
				zap.String("vbid", item.VendorBookID),
				zap.String("title", item.Title),
				zap.Error(err))
			continue
		}

		syncedIDs[product.ID.String()] = struct{}{}
		if created {
			result.Imported++
		} else {
			result.Updated++
		}
	}

	if snapshot.OnlyVendorProducts() {
		trashed, err := s.trashUnsynced(ctx, syncedIDs)
		if err != nil {
			s.logger.Warn("catalog cleanup pass failed", zap.Error(err))
		}
		result.Trashed = trashed
	}

	s.logger.Info("catalog sync finished",
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int("trashed", result.Trashed))

	return result, nil
}

// syncItem upserts a single feed item. Returns the stored product and
// whether it was newly created.
func (s *SyncService) syncItem(
	ctx context.Context,
	item licensing.CatalogItem,
	snapshot *settings.Settings,
) (*catalog.Product, bool, error) {
	// Items without a purchasable single-license price import at zero.
	// Stores that configured a default_price get that instead.
	sku, price, ok := item.SingleLicensePrice()
	if !ok || price.IsZero() {
		price = snapshot.DefaultPrice()
	}

	product, err := s.productRepo.FindByCode(ctx, sku)
	created := false
	switch {
	case errors.Is(err, shared.ErrNotFound):
		product, err = catalog.NewProduct(item.Title)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	default:
		// A trashed title that reappears in the feed comes back to the
		// storefront.
		if !product.IsActive() {
			if err := product.Restore(); err != nil {
				return nil, false, err
			}
		}
		if err := product.Rename(item.Title); err != nil {
			return nil, false, err
		}
	}

	product.SetDescription(item.Description)
	product.SetVendorBookID(item.VendorBookID)
	product.SetSoldIndividually(true)
	if sku != "" {
		if err := product.SetCode(sku); err != nil {
			return nil, false, err
		}
	}
	if err := product.SetRegularPrice(valueobject.NewMoneyUSD(price)); err != nil {
		return nil, false, err
	}

	// The cover upload is an independent side effect; a failure here only
	// loses the image, never the product.
	if key := s.storeCover(ctx, item); key != "" {
		product.SetCoverImageKey(key)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, false, err
	}

	return product, created, nil
}

// storeCover fetches the item's cover image and uploads it to object
// storage, returning the storage key. Empty when there is no cover or the
// fetch/upload fails.
func (s *SyncService) storeCover(ctx context.Context, item licensing.CatalogItem) string {
	if item.CoverURL == "" || item.VendorBookID == "" || s.covers == nil || s.storage == nil {
		return ""
	}

	data, contentType, err := s.covers.Fetch(ctx, item.CoverURL)
	if err != nil {
		s.logger.Warn("cover image fetch failed",
			zap.String("vbid", item.VendorBookID),
			zap.String("url", item.CoverURL),
			zap.Error(err))
		return ""
	}

	key := "covers/" + item.VendorBookID + coverExtension(contentType)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Warn("cover image upload failed",
			zap.String("vbid", item.VendorBookID),
			zap.String("key", key),
			zap.Error(err))
		return ""
	}

	return key
}

// trashUnsynced soft-deletes every active product that was not part of the
// sync run. Products just synced are never trashed.
func (s *SyncService) trashUnsynced(ctx context.Context, syncedIDs map[string]struct{}) (int, error) {
	products, err := s.productRepo.FindActive(ctx, shared.Filter{})
	if err != nil {
		return 0, err
	}

	trashed := 0
	for i := range products {
		product := &products[i]
		if _, ok := syncedIDs[product.ID.String()]; ok {
			continue
		}

		if err := product.Trash(); err != nil {
			continue
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			s.logger.Warn("failed to trash product",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
			continue
		}
		trashed++
	}

	return trashed, nil
}

func coverExtension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
