package service

import (
	"context"
	"errors"

	"github.com/pedroluizchagas/thv/internal/config"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// BucketEnsurer creates the product-photo bucket when it does not exist yet.
// Implemented by the S3-compatible storage client in infra.
type BucketEnsurer interface {
	EnsureBucket(ctx context.Context) (created bool, err error)
}

type SetupService interface {
	// EnsureAdmin creates the first admin account from configuration.
	// Idempotent: when the account already exists nothing changes and
	// created is false.
	EnsureAdmin(ctx context.Context) (created bool, email string, err error)
	EnsureBucket(ctx context.Context) (created bool, err error)
}

type setupService struct {
	userRepo repository.UserRepository
	storage  BucketEnsurer
	cfg      *config.Config
}

func NewSetupService(userRepo repository.UserRepository, storage BucketEnsurer, cfg *config.Config) SetupService {
	return &setupService{userRepo: userRepo, storage: storage, cfg: cfg}
}

func (s *setupService) EnsureAdmin(ctx context.Context) (bool, string, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return false, "", errors.New("ADMIN_EMAIL e ADMIN_PASSWORD não configurados")
	}

	if _, err := s.userRepo.FindByEmail(ctx, s.cfg.AdminEmail); err == nil {
		return false, s.cfg.AdminEmail, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), 12)
	if err != nil {
		return false, "", err
	}
	admin := &model.User{
		Name:         "Administrador",
		Email:        s.cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, "", err
	}
	return true, admin.Email, nil
}

func (s *setupService) EnsureBucket(ctx context.Context) (bool, error) {
	if s.storage == nil {
		return false, errors.New("armazenamento de objetos não configurado")
	}
	return s.storage.EnsureBucket(ctx)
}
