package usecase

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"storefront/internal/domain/model"
)

// カタログが使うバックエンド操作
type CatalogBackend interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, productID int64) (model.Product, error)
}

type ProductUsecase struct {
	backend CatalogBackend
}

// DI
func NewProductUsecase(b CatalogBackend) *ProductUsecase {
	return &ProductUsecase{backend: b}
}

type ListProductsInput struct {
	Q    string
	Sort string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

// ListProducts は一覧を取得して、検索・並び替えは手元で行う。
// 対象は高々数十件なので線形で十分。
func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	switch in.Sort {
	case "", "name", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	all, err := u.backend.ListProducts(ctx)
	if err != nil {
		return ProductListOutput{}, fromBackend(err)
	}

	q := strings.ToLower(strings.TrimSpace(in.Q))

	items := make([]model.Product, 0, len(all))
	for _, p := range all {
		if !p.IsActive {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		items = append(items, p)
	}

	switch in.Sort {
	case "name":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name < items[j].Name
		})
	case "price_asc":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.LessThan(items[j].Price)
		})
	case "price_desc":
		sort.SliceStable(items, func(i, j int) bool {
			return items[j].Price.LessThan(items[i].Price)
		})
	}

	return ProductListOutput{Items: items, Total: len(items)}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.backend.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, fromBackend(err)
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}
