package setrepo

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/hermes-oai/pkg/handle"
	"github.com/hashicorp-forge/hermes-oai/pkg/sequence"
)

// NewGormRepository creates a Repository backed by the communities,
// collections, and handles tables of db.
func NewGormRepository(db *gorm.DB, logger hclog.Logger) (*Repository, error) {
	communities, err := sequence.NewCommunityProvider(db, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating community provider: %w", err)
	}
	collections, err := sequence.NewCollectionProvider(db, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating collection provider: %w", err)
	}
	resolver, err := handle.NewGormResolver(db, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating handle resolver: %w", err)
	}

	return New(Config{
		Communities: communities,
		Collections: collections,
		Resolver:    resolver,
		Logger:      logger,
	})
}
