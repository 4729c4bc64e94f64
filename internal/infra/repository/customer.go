package repository

import (
	"context"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type CustomerWriteQueries interface {
	UpdateCustomerEmail(ctx context.Context, db pgstore.DBTX, id int64, email pgtype.Text) (int64, error)
}

type CustomerRepository struct {
	queries CustomerWriteQueries
}

func NewCustomerRepository(queries CustomerWriteQueries) *CustomerRepository {
	return &CustomerRepository{queries: queries}
}

// UpdateEmail stores the customer's current email. A concurrent owner of the
// same address surfaces as KindDuplicateKey on customers_email_key.
func (r *CustomerRepository) UpdateEmail(ctx context.Context, tx pgstore.DBTX, c *customer.Customer) error {
	n, err := r.queries.UpdateCustomerEmail(ctx, tx, c.ID(), pgconv.OptionalStringToPgtype(c.Email().Value()))
	if err != nil {
		return infra.WrapRepoErr("failed to update customer email", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return nil
}
