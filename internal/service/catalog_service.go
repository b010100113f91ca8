package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	productSlugIndex  = "idx_products_slug"
	productSKUIndex   = "idx_products_sku"
	categoryNameIndex = "idx_categories_name"
	categorySlugIndex = "idx_categories_slug"

	slugAttempts = 3
)

type catalogService struct {
	repo  *repository.Repository
	cache ProductCache
	authz Authorizer
	log   *zap.Logger
	now   func() time.Time
}

// NewCatalogService wires the catalog. cache may be nil.
func NewCatalogService(repo *repository.Repository, cache ProductCache, authz Authorizer, log *zap.Logger) CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &catalogService{
		repo:  repo,
		cache: cache,
		authz: authz,
		log:   log,
		now:   time.Now,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if err := authorize(ctx, s.authz, ResourceProducts, ActionWrite); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	slug := Slugify(name)
	if name == "" || slug == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidProduct)
	}

	c := &models.Category{Name: name, Slug: slug, CreatedAt: s.now().UTC()}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err, categoryNameIndex) || repository.IsUniqueViolation(err, categorySlugIndex) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories.List(ctx)
}

func validateProduct(price decimal.Decimal, discount *decimal.Decimal, tax decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidProduct)
	}
	if discount != nil && discount.IsNegative() {
		return fmt.Errorf("%w: discount price must be >= 0", ErrInvalidProduct)
	}
	if tax.IsNegative() || tax.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tax percent must be within 0..100", ErrInvalidProduct)
	}
	return nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d.Round(2), Valid: true}
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := authorize(ctx, s.authz, ResourceProducts, ActionWrite); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrInvalidProduct)
	}
	if err := validateProduct(in.Price, in.DiscountPrice, in.TaxPercent); err != nil {
		return nil, err
	}

	var sku *string
	if v := strings.TrimSpace(in.SKU); v != "" {
		sku = &v
	}

	base := Slugify(name)
	if base == "" {
		base = "product"
	}

	now := s.now().UTC()
	var created *models.Product
	for attempt := 1; attempt <= slugAttempts; attempt++ {
		p := &models.Product{
			CategoryID:    in.CategoryID,
			Name:          name,
			SKU:           sku,
			Description:   strings.TrimSpace(in.Description),
			Price:         in.Price.Round(2),
			DiscountPrice: nullDecimal(in.DiscountPrice),
			TaxPercent:    in.TaxPercent.Round(2),
			Stock:         in.Stock,
			IsActive:      in.IsActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
			if sku != nil {
				existing, err := tx.Products.GetBySKU(ctx, *sku)
				if err != nil {
					return err
				}
				if existing != nil {
					return ErrSKUAlreadyExists
				}
			}
			taken, err := tx.Products.SlugsWithPrefix(ctx, base)
			if err != nil {
				return err
			}
			p.Slug = uniqueSlug(base, taken)
			return tx.Products.Create(ctx, p)
		})

		switch {
		case err == nil:
			created = p
		case repository.IsUniqueViolation(err, productSlugIndex):
			s.log.Debug("slug collision, retrying", zap.String("slug", p.Slug), zap.Int("attempt", attempt))
			continue
		case repository.IsUniqueViolation(err, productSKUIndex):
			return nil, ErrSKUAlreadyExists
		case repository.IsForeignKeyViolation(err):
			return nil, ErrCategoryNotFound
		default:
			return nil, err
		}
		break
	}
	if created == nil {
		return nil, fmt.Errorf("could not allocate a unique slug for %q", name)
	}

	return s.repo.Products.GetByID(ctx, created.ID)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	if err := authorize(ctx, s.authz, ResourceProducts, ActionWrite); err != nil {
		return nil, err
	}

	cur, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrProductNotFound
	}

	price := cur.Price
	if patch.Price != nil {
		price = *patch.Price
	}
	tax := cur.TaxPercent
	if patch.TaxPercent != nil {
		tax = *patch.TaxPercent
	}
	if err := validateProduct(price, patch.DiscountPrice, tax); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.CategoryID != nil {
		fields["category_id"] = *patch.CategoryID
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		fields["price"] = patch.Price.Round(2)
	}
	if patch.TaxPercent != nil {
		fields["tax_percent"] = patch.TaxPercent.Round(2)
	}
	switch {
	case patch.ClearDiscount:
		fields["discount_price"] = nil
	case patch.DiscountPrice != nil:
		fields["discount_price"] = patch.DiscountPrice.Round(2)
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if patch.SKU != nil {
		v := strings.TrimSpace(*patch.SKU)
		if v == "" {
			fields["sku"] = nil
		} else {
			existing, err := s.repo.Products.GetBySKU(ctx, v)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, ErrSKUAlreadyExists
			}
			fields["sku"] = v
		}
	}
	if len(fields) == 0 {
		return cur, nil
	}
	fields["updated_at"] = s.now().UTC()

	if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
		switch {
		case repository.IsUniqueViolation(err, productSKUIndex):
			return nil, ErrSKUAlreadyExists
		case repository.IsForeignKeyViolation(err):
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, id)

	return s.repo.Products.GetByID(ctx, id)
}

func (s *catalogService) Restock(ctx context.Context, id uuid.UUID, delta int32) (*models.Product, error) {
	if err := authorize(ctx, s.authz, ResourceProducts, ActionWrite); err != nil {
		return nil, err
	}

	ok, err := s.repo.Products.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if !ok {
		return nil, fmt.Errorf("%w: stock %d cannot be adjusted by %d", ErrInvalidProduct, p.Stock, delta)
	}
	s.invalidate(ctx, id)
	s.log.Info("Остаток товара изменён", zap.String("product_id", id.String()), zap.Int32("delta", delta), zap.Int32("stock", p.Stock))
	return p, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := authorize(ctx, s.authz, ResourceProducts, ActionWrite); err != nil {
		return err
	}

	used, err := s.repo.OrderItems.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrProductInUse
	}

	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrProductInUse
		}
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

// GetProduct serves active products to everyone and inactive ones to catalog writers only.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if isAllowed(ctx, s.authz, ResourceProducts, ActionWrite) {
		p, err := s.repo.Products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProductNotFound
		}
		return p, nil
	}

	if s.cache != nil {
		if p, ok := s.cache.GetProduct(ctx, id); ok {
			return p, nil
		}
	}

	p, err := s.repo.Products.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if s.cache != nil {
		s.cache.SetProduct(ctx, p)
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	rf := repository.ProductListFilter{
		Query:      f.Query,
		OnlyActive: true,
		Limit:      f.Limit,
		Offset:     f.Offset,
	}
	if f.IncludeInactive && isAllowed(ctx, s.authz, ResourceProducts, ActionWrite) {
		rf.OnlyActive = false
	}

	if slug := strings.TrimSpace(f.CategorySlug); slug != "" {
		c, err := s.repo.Categories.GetBySlug(ctx, slug)
		if err != nil {
			return nil, 0, err
		}
		if c == nil {
			return nil, 0, ErrCategoryNotFound
		}
		rf.CategoryID = &c.ID
	}

	list, total, err := s.repo.Products.List(ctx, rf)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *catalogService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, ids...)
	}
}
