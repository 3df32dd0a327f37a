package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
)

// Uploader stores an object and returns its public URL. Implemented by the
// S3-compatible storage client in infra.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

var allowedPhotoExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type ProductService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UploadPhoto(ctx context.Context, id uuid.UUID, slot int, filename, contentType string, body io.Reader, size int64) (*dto.PhotoUploadResponse, error)
}

type productService struct {
	repo     repository.ProductRepository
	uploader Uploader
}

func NewProductService(repo repository.ProductRepository, uploader Uploader) ProductService {
	return &productService{repo: repo, uploader: uploader}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("já existe um produto com o código %s", req.Code)
	}

	p := &model.Product{}
	applyProductRequest(p, req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	return productToResponse(p), nil
}

func (s *productService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Data:  make([]dto.ProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, *productToResponse(&products[i]))
	}
	return resp, nil
}

// UpdateProduct overwrites the whole record with the request payload; there
// is no partial patch. Stock keeps its current value — editing stock goes
// through the adjustment flow, never through the product form.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	if p.Code != req.Code {
		if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
			return nil, fmt.Errorf("já existe um produto com o código %s", req.Code)
		}
	}

	currentStock := p.StockQuantity
	applyProductRequest(p, req)
	p.StockQuantity = currentStock

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// DeleteProduct is a hard delete. Products already referenced by sales or
// purchases fail the FK constraint; deactivating is the safe path for those.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("produto não encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.New("produto possui vendas ou compras vinculadas; desative-o em vez de excluir")
	}
	return nil
}

// UploadPhoto stores the image under products/{id}/photo{slot}-{unix}.{ext}
// and saves the resulting public URL on the product. Slots are 1..3;
// re-uploading a slot replaces the URL (the old object is left behind).
func (s *productService) UploadPhoto(ctx context.Context, id uuid.UUID, slot int, filename, contentType string, body io.Reader, size int64) (*dto.PhotoUploadResponse, error) {
	if s.uploader == nil {
		return nil, errors.New("armazenamento de objetos não configurado")
	}
	if slot < 1 || slot > 3 {
		return nil, errors.New("slot de foto inválido (1 a 3)")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("produto não encontrado")
	}

	ext := strings.ToLower(path.Ext(filename))
	expectedType, ok := allowedPhotoExts[ext]
	if !ok {
		return nil, errors.New("formato de imagem não suportado (jpg, png ou webp)")
	}
	if contentType == "" {
		contentType = expectedType
	}

	key := fmt.Sprintf("products/%s/photo%d-%d%s", id, slot, time.Now().Unix(), ext)
	publicURL, err := s.uploader.Upload(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("erro ao enviar a imagem: %w", err)
	}

	if err := s.repo.UpdatePhotoURL(ctx, id, slot, publicURL); err != nil {
		return nil, err
	}
	return &dto.PhotoUploadResponse{Slot: slot, URL: publicURL}, nil
}

func applyProductRequest(p *model.Product, req dto.CreateProductRequest) {
	p.Code = req.Code
	p.Name = req.Name
	p.Description = req.Description
	p.CostPrice = req.CostPrice
	p.SalePrice = req.SalePrice
	p.StockQuantity = req.StockQuantity
	p.MinStock = req.MinStock
	p.Brand = req.Brand
	p.Application = req.Application

	p.Unit = req.Unit
	if p.Unit == "" {
		p.Unit = "un"
	}
	p.IsActive = true
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.CategoryID = nil
	if req.CategoryID != nil && *req.CategoryID != "" {
		if cid, err := uuid.Parse(*req.CategoryID); err == nil {
			p.CategoryID = &cid
		}
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:            p.ID.String(),
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		Unit:          p.Unit,
		Brand:         p.Brand,
		Application:   p.Application,
		Photo1URL:     p.Photo1URL,
		Photo2URL:     p.Photo2URL,
		Photo3URL:     p.Photo3URL,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.CategoryID != nil {
		cid := p.CategoryID.String()
		resp.CategoryID = &cid
	}
	if p.Category != nil {
		resp.Category = categoryToResponse(p.Category)
	}
	return resp
}
