package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
)

type QuoteService interface {
	// Submit is the public intake. Status is always forced to "pending".
	Submit(ctx context.Context, req dto.SubmitQuoteRequest) (*dto.QuoteResponse, error)
	ListQuotes(ctx context.Context, filter dto.QuoteFilter) (*dto.QuoteListResponse, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*dto.QuoteResponse, error)
	Triage(ctx context.Context, id uuid.UUID, req dto.TriageQuoteRequest) (*dto.QuoteResponse, error)
	DeleteQuote(ctx context.Context, id uuid.UUID) error
}

type quoteService struct {
	repo        repository.QuoteRepository
	productRepo repository.ProductRepository
	companyName string
}

func NewQuoteService(repo repository.QuoteRepository, productRepo repository.ProductRepository, companyName string) QuoteService {
	return &quoteService{repo: repo, productRepo: productRepo, companyName: companyName}
}

func (s *quoteService) Submit(ctx context.Context, req dto.SubmitQuoteRequest) (*dto.QuoteResponse, error) {
	q := &model.QuoteRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  model.QuoteStatusPending,
	}

	// Catalog submissions carry a product; denormalize its name so the lead
	// keeps meaning even if the product is later edited or removed.
	if req.ProductID != nil && *req.ProductID != "" {
		pid, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product_id inválido: %w", err)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("produto %s não encontrado", *req.ProductID)
		}
		pidCopy := p.ID
		name := p.Name
		q.ProductID = &pidCopy
		q.ProductName = &name
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return s.quoteToResponse(q), nil
}

func (s *quoteService) ListQuotes(ctx context.Context, filter dto.QuoteFilter) (*dto.QuoteListResponse, error) {
	quotes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.QuoteListResponse{
		Data:  make([]dto.QuoteResponse, 0, len(quotes)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range quotes {
		resp.Data = append(resp.Data, *s.quoteToResponse(&quotes[i]))
	}
	return resp, nil
}

func (s *quoteService) GetQuote(ctx context.Context, id uuid.UUID) (*dto.QuoteResponse, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orçamento não encontrado")
	}
	return s.quoteToResponse(q), nil
}

// Triage updates status and staff notes. Any status can move to any other
// status, including back to pending; the workflow deliberately has no state
// machine.
func (s *quoteService) Triage(ctx context.Context, id uuid.UUID, req dto.TriageQuoteRequest) (*dto.QuoteResponse, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orçamento não encontrado")
	}
	q.Status = req.Status
	if req.Notes != nil {
		q.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return s.quoteToResponse(q), nil
}

func (s *quoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("orçamento não encontrado")
	}
	return s.repo.Delete(ctx, id)
}

func (s *quoteService) quoteToResponse(q *model.QuoteRequest) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:          q.ID.String(),
		Name:        q.Name,
		Email:       q.Email,
		Phone:       q.Phone,
		Message:     q.Message,
		ProductName: q.ProductName,
		Status:      q.Status,
		Notes:       q.Notes,
		CreatedAt:   q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if q.ProductID != nil {
		pid := q.ProductID.String()
		resp.ProductID = &pid
	}

	product := ""
	if q.ProductName != nil {
		product = *q.ProductName
	}

	if q.Phone != nil {
		if link := whatsAppLink(*q.Phone, q.Name, product, s.companyName); link != "" {
			resp.WhatsAppURL = &link
		}
	}
	resp.MailtoURL = mailtoLink(q.Email, q.Name, product, s.companyName)
	return resp
}

// whatsAppLink builds a wa.me deep link for the customer's phone, assuming
// Brazilian numbers: non-digits are stripped and the country code 55 is
// prepended when missing. Empty after stripping returns no link.
func whatsAppLink(phone, customerName, productName, companyName string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()
	if number == "" {
		return ""
	}
	if !strings.HasPrefix(number, "55") {
		number = "55" + number
	}

	text := fmt.Sprintf("Olá %s! Recebemos sua solicitação de orçamento", customerName)
	if productName != "" {
		text += fmt.Sprintf(" para %s", productName)
	}
	text += fmt.Sprintf(". Aqui é da %s, como podemos ajudar?", companyName)

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

func mailtoLink(email, customerName, productName, companyName string) string {
	subject := fmt.Sprintf("Orçamento - %s", companyName)
	if productName != "" {
		subject = fmt.Sprintf("Orçamento %s - %s", productName, companyName)
	}
	body := fmt.Sprintf("Olá %s,\n\nRecebemos sua solicitação de orçamento.\n\nAtenciosamente,\n%s", customerName, companyName)

	params := url.Values{}
	params.Set("subject", subject)
	params.Set("body", body)
	// mailto uses %20 for spaces, not '+'
	query := strings.ReplaceAll(params.Encode(), "+", "%20")
	return "mailto:" + email + "?" + query
}
