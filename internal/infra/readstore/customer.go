package readstore

import (
	"context"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/converter"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"
)

type CustomerReadQueries interface {
	GetCustomerByID(ctx context.Context, db pgstore.DBTX, id int64) (pgstore.Customer, error)
	FindCustomerIDByEmailExcluding(ctx context.Context, db pgstore.DBTX, email string, excludeID int64) (int64, error)
}

type CustomerReadStore struct {
	queries CustomerReadQueries
}

func NewCustomerReadStore(queries CustomerReadQueries) *CustomerReadStore {
	return &CustomerReadStore{queries: queries}
}

func (r *CustomerReadStore) FindByID(ctx context.Context, db pgstore.DBTX, id int64) (*customer.Customer, error) {
	row, err := r.queries.GetCustomerByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by ID", err)
	}
	return converter.CustomerToDomain(row), nil
}

// EmailOwnedByOther reports whether a customer other than customerID holds
// email.
func (r *CustomerReadStore) EmailOwnedByOther(ctx context.Context, db pgstore.DBTX, email string, customerID int64) (bool, error) {
	_, err := r.queries.FindCustomerIDByEmailExcluding(ctx, db, email, customerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to look up customer email", err)
	}
	return true, nil
}
