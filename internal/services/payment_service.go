package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"memberportal/internal/domain"
	"memberportal/internal/validate"
)

type PaymentInput struct {
	FullName   string `json:"fullname" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Package    string `json:"package" validate:"required"`
	CardNumber string `json:"card_number" validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

type PaymentService struct {
	Store PaymentStore
	Now   func() time.Time
}

func NewPaymentService(store PaymentStore) *PaymentService {
	return &PaymentService{Store: store, Now: utcNow}
}

// Submit replaces any earlier payment record for in.Email.
func (s *PaymentService) Submit(ctx context.Context, in PaymentInput) error {
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return err
	}
	err := s.Store.Replace(ctx, domain.Payment{
		FullName:    in.FullName,
		Email:       in.Email,
		Package:     in.Package,
		CardNumber:  in.CardNumber,
		ExpiryDate:  in.ExpiryDate,
		CVV:         in.CVV,
		PaymentDate: s.Now(),
	})
	if err != nil {
		return persistence(err)
	}
	return nil
}

func (s *PaymentService) Current(ctx context.Context, email string) (domain.Membership, error) {
	m, err := s.Store.LatestByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Membership{}, domain.ErrMembershipNotFound
	}
	if err != nil {
		return domain.Membership{}, persistence(err)
	}
	return m, nil
}
