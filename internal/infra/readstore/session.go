package readstore

import (
	"context"

	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/converter"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"
)

type SessionReadQueries interface {
	GetSessionByID(ctx context.Context, db pgstore.DBTX, id int64) (pgstore.Session, error)
}

type SessionReadStore struct {
	queries SessionReadQueries
}

func NewSessionReadStore(queries SessionReadQueries) *SessionReadStore {
	return &SessionReadStore{queries: queries}
}

func (r *SessionReadStore) FindByID(ctx context.Context, db pgstore.DBTX, id int64) (*session.Session, error) {
	row, err := r.queries.GetSessionByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find session by ID", err)
	}
	s, err := converter.SessionToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored session is inconsistent", err, infra.KindDBFailure)
	}
	return s, nil
}
