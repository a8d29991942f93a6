package user

import (
	"taskhive/internal/errors"
	"taskhive/internal/models"
	"taskhive/internal/repositories"
	"taskhive/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// RegisterInput is a signup request. Role must be client or worker; admins
// are provisioned out of band.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Role       string
	HourlyRate float64
}

func (s *Service) Register(input RegisterInput) (*models.User, error) {
	if input.Email == "" || input.Name == "" {
		return nil, errors.NewInvalidArgument("email and name are required")
	}
	if input.Role != models.RoleClient && input.Role != models.RoleWorker {
		return nil, errors.NewInvalidArgument("role must be %q or %q", models.RoleClient, models.RoleWorker)
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, errors.NewInvalidArgument("%s", err.Error())
	}
	if input.Role == models.RoleWorker && input.HourlyRate < 0 {
		return nil, errors.NewInvalidArgument("hourly rate must be non-negative")
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, errors.NewInvalidArgument("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:      input.Email,
		Password:   string(hashed),
		Name:       input.Name,
		Role:       input.Role,
		HourlyRate: input.HourlyRate,
		Status:     "active",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, errors.NewNotFound("user")
	}
	return user, nil
}
