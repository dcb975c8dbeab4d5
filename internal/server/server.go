package server

import (
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/hermes-oai/internal/config"
	"github.com/hashicorp-forge/hermes-oai/pkg/setrepo"
)

// Server contains the server configuration.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// DB is the database for the server.
	DB *gorm.DB

	// Logger is the logger for the server.
	Logger hclog.Logger

	// Sets lists sets and checks set specs.
	Sets *setrepo.Repository
}
