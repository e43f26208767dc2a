package service

import (
	"context"

	"github.com/pkordes/itinerary/backend/internal/repo"
)

// Store is the slice of repo.Store the services need. Tests substitute a
// fake whose Repos bundle is built from hand-written mocks; WithTx on the
// fake just calls fn with the same bundle, since there is no real
// transaction to manage.
type Store interface {
	Repos() repo.Repos
	WithTx(ctx context.Context, fn func(repo.Repos) error) error
}

var _ Store = (*repo.Store)(nil)
