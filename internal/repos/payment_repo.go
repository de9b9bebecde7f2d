package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"memberportal/internal/domain"
)

type PaymentRepo struct{ DB *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Replace stores p as the only payment row for p.Email. The upsert on the
// unique email column keeps concurrent submissions from leaving two rows.
func (r *PaymentRepo) Replace(ctx context.Context, p domain.Payment) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		INSERT INTO payments(fullname, email, package, card_number, expiry_date, cvv, payment_date)
		VALUES(?,?,?,?,?,?,?)
		ON CONFLICT(email) DO UPDATE SET
		  fullname=excluded.fullname,
		  package=excluded.package,
		  card_number=excluded.card_number,
		  expiry_date=excluded.expiry_date,
		  cvv=excluded.cvv,
		  payment_date=excluded.payment_date`),
		p.FullName, p.Email, p.Package, p.CardNumber, p.ExpiryDate, p.CVV, p.PaymentDate.UTC())
	return err
}

func (r *PaymentRepo) LatestByEmail(ctx context.Context, email string) (domain.Membership, error) {
	var m domain.Membership
	err := r.DB.GetContext(ctx, &m, r.DB.Rebind(`
		SELECT fullname, package, payment_date
		FROM payments
		WHERE email=?
		ORDER BY payment_date DESC
		LIMIT 1`), email)
	return m, err
}
