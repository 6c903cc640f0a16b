package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

const DefaultAccessTokenTTL = 24 * time.Hour

type AuthService struct {
	customerRepo   ports.CustomerRepository
	jwtSecret      []byte
	accessTokenTTL time.Duration
}

func NewAuthService(customerRepo ports.CustomerRepository, jwtSecret string, accessTokenTTL time.Duration) *AuthService {
	if accessTokenTTL <= 0 {
		accessTokenTTL = DefaultAccessTokenTTL
	}
	return &AuthService{
		customerRepo:   customerRepo,
		jwtSecret:      []byte(jwtSecret),
		accessTokenTTL: accessTokenTTL,
	}
}

// Login looks the customer up by phone number. Customers are registered in
// the shop, so an unknown number is domain.ErrCustomerNotFound.
func (s *AuthService) Login(ctx context.Context, phone string) (*domain.Customer, string, error) {
	phone = domain.FormatPhoneNumber(phone)
	if err := domain.ValidatePhoneNumber(phone); err != nil {
		return nil, "", err
	}

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get customer: %w", classify(err))
	}
	if customer == nil {
		return nil, "", domain.ErrCustomerNotFound
	}

	accessToken, err := s.generateAccessToken(customer)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return customer, accessToken, nil
}

func (s *AuthService) ParseToken(token string) (*domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	customerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}

	return &domain.Session{CustomerID: customerID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *AuthService) generateAccessToken(customer *domain.Customer) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   customer.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
