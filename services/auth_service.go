package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	CollegeID *int   `json:"college_id"`

	// "Other college" flow: when CollegeID is absent the college is
	// created from these fields during registration.
	CollegeName     string `json:"college_name"`
	CollegeDistrict string `json:"college_district"`
	CollegeState    string `json:"college_state"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	collegeRepo repositories.CollegeRepository
}

func NewAuthService(userRepo repositories.UserRepository, collegeRepo repositories.CollegeRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		collegeRepo: collegeRepo,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	collegeID := input.CollegeID
	if collegeID != nil {
		if _, err := s.collegeRepo.GetByID(ctx, *collegeID); err != nil {
			if errors.Is(err, repositories.ErrCollegeNotFound) {
				return nil, ErrCollegeNotFound
			}
			return nil, fmt.Errorf("failed to resolve college %d: %w", *collegeID, err)
		}
	} else if input.CollegeName != "" {
		college := &models.College{
			Name:     input.CollegeName,
			District: input.CollegeDistrict,
			State:    input.CollegeState,
		}
		if err := s.collegeRepo.Create(ctx, college); err != nil {
			return nil, fmt.Errorf("failed to create college: %w", err)
		}
		collegeID = &college.ID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hashedPassword),
		Phone:        input.Phone,
		CollegeID:    collegeID,
		Role:         models.RoleParticipant,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		if errors.Is(err, repositories.ErrUserCollegeInvalid) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}
