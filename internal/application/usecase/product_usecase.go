package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// BarcodeRenderer puerto para generar la imagen PNG del código de barras
// de un producto (code128 sobre barcode_value).
type BarcodeRenderer interface {
	RenderPNG(value string, width, height int) ([]byte, error)
}

// ProductUseCase casos de uso de catálogo para productos. El costo se
// maneja vía movimientos de stock; el stock por ubicación vive en los
// saldos.
type ProductUseCase struct {
	repo    repository.ProductRepository
	barcode BarcodeRenderer
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, barcode BarcodeRenderer) *ProductUseCase {
	return &ProductUseCase{repo: repo, barcode: barcode}
}

// Create crea un nuevo producto y, si queda activo, le asigna el barcode
// (llamada explícita tras persistir — aquí no hay hooks de guardado).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Color:        in.Color,
		Size:         in.Size,
		Cost:         in.Cost,
		SellingPrice: in.SellingPrice,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if err := uc.EnsureBarcode(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// EnsureBarcode asigna barcode_value (= SKU) si el producto está activo y
// aún no tiene uno. Devuelve nil si no había nada que hacer.
func (uc *ProductUseCase) EnsureBarcode(product *entity.Product) error {
	if !product.IsActive || product.BarcodeValue != "" {
		return nil
	}
	product.BarcodeValue = product.SKU
	return uc.repo.UpdateBarcode(product.ID, product.BarcodeValue)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar SKU ni stock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Cost.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product.Name = in.Name
	product.Color = in.Color
	product.Size = in.Size
	product.Cost = in.Cost
	product.SellingPrice = in.SellingPrice
	product.IsActive = in.IsActive
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	if err := uc.EnsureBarcode(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Scan resuelve un producto por SKU o por barcode_value (lector de
// mostrador).
func (uc *ProductUseCase) Scan(code string) (*dto.ScanResponse, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ScanResponse{
		ID:       product.ID,
		SKU:      product.SKU,
		Name:     product.Name,
		Price:    product.SellingPrice,
		IsActive: product.IsActive,
	}, nil
}

// BarcodePNG genera la imagen code128 del barcode del producto.
func (uc *ProductUseCase) BarcodePNG(id string) ([]byte, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	value := product.BarcodeValue
	if value == "" {
		value = product.SKU
	}
	return uc.barcode.RenderPNG(value, 300, 80)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Color:        p.Color,
		Size:         p.Size,
		Cost:         p.Cost,
		SellingPrice: p.SellingPrice,
		BarcodeValue: p.BarcodeValue,
		IsActive:     p.IsActive,
	}
}
