package service

import (
	"context"
	"errors"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
)

// Customer and supplier records share one DTO surface; the two services are
// thin twins over their repositories.

type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.SavePartnerRequest) (*dto.PartnerResponse, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error)
	ListCustomers(ctx context.Context, filter dto.PartnerFilter) (*dto.PartnerListResponse, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req dto.SavePartnerRequest) (*dto.PartnerResponse, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type SupplierService interface {
	CreateSupplier(ctx context.Context, req dto.SavePartnerRequest) (*dto.PartnerResponse, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error)
	ListSuppliers(ctx context.Context, filter dto.PartnerFilter) (*dto.PartnerListResponse, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, req dto.SavePartnerRequest) (*dto.PartnerResponse, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.SavePartnerRequest) (*dto.PartnerResponse, error) {
	c := &model.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente não encontrado")
	}
	return customerToResponse(c), nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter dto.PartnerFilter) (*dto.PartnerListResponse, error) {
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PartnerListResponse{
		Data:  make([]dto.PartnerResponse, 0, len(customers)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range customers {
		resp.Data = append(resp.Data, *customerToResponse(&customers[i]))
	}
	return resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req dto.SavePartnerRequest) (*dto.PartnerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente não encontrado")
	}
	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.Document = req.Document
	c.Address = req.Address
	c.City = req.City
	c.State = req.State
	c.Notes = req.Notes
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

// DeleteCustomer hard-deletes the record. Past sales keep their customer_id
// pointing nowhere; sale items already carry the data that matters.
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cliente não encontrado")
	}
	return s.repo.Delete(ctx, id)
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.SavePartnerRequest) (*dto.PartnerResponse, error) {
	sup := &model.Supplier{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fornecedor não encontrado")
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, filter dto.PartnerFilter) (*dto.PartnerListResponse, error) {
	suppliers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PartnerListResponse{
		Data:  make([]dto.PartnerResponse, 0, len(suppliers)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range suppliers {
		resp.Data = append(resp.Data, *supplierToResponse(&suppliers[i]))
	}
	return resp, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, req dto.SavePartnerRequest) (*dto.PartnerResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fornecedor não encontrado")
	}
	sup.Name = req.Name
	sup.Email = req.Email
	sup.Phone = req.Phone
	sup.Document = req.Document
	sup.Address = req.Address
	sup.City = req.City
	sup.State = req.State
	sup.Notes = req.Notes
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("fornecedor não encontrado")
	}
	return s.repo.Delete(ctx, id)
}

func customerToResponse(c *model.Customer) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func supplierToResponse(s *model.Supplier) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Document:  s.Document,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
