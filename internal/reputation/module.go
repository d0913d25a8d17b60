package reputation

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/simskyeconomy/simsky-core/internal/account"
)

// NewModule returns the reputation module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			fx.Annotate(
				func(log *zap.Logger, repo Repository) *Service {
					return NewService(log, repo)
				},
			),
			fx.Annotate(
				func(svc *Service, log *zap.Logger) *Handler {
					return NewHandler(svc, log)
				},
			),
			// Signup pins fresh profiles on the lowest tier.
			fx.Annotate(
				func(repo Repository) account.TierSource {
					return tierSource{repo: repo}
				},
			),
		),
	)
}

type tierSource struct {
	repo Repository
}

func (t tierSource) LowestTier() (account.TierRef, error) {
	tier, err := t.repo.LowestTier()
	if err != nil {
		return account.TierRef{}, err
	}
	return account.TierRef{ID: tier.ID, Grade: tier.Grade}, nil
}
