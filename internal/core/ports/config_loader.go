package ports

import "go.trai.ch/sift/internal/core/domain"

// ConfigLoader defines the interface for loading the audit configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration rooted at the given directory, including
	// discovery of path-scoped override files.
	Load(root string) (*domain.AuditConfig, error)
}
