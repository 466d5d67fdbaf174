package handlers

import (
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/config"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/storage/postgres"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/storage/redis"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/tracker"

	"go.uber.org/zap"
)

// Context contains deps for all handlers
type Context struct {
	Store   *postgres.Store
	Cache   *redis.Cache
	Tracker *tracker.Facade
	Config  *config.Config
	Logger  *zap.Logger
}
