package ports

import "go.trai.ch/restore/internal/core/domain"

// ConfigLoader loads the workspace configuration and the nominations it lists.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds restore.yaml by walking up from cwd and loads it.
	Load(cwd string) (*domain.Workspace, error)
	// LoadNominations reads every nomination file of the workspace.
	LoadNominations(ws *domain.Workspace) ([]domain.NominationData, error)
	// LoadNomination reads a single nomination file.
	LoadNomination(path string) (domain.NominationData, error)
}
