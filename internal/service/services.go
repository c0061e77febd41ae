package service

import (
	"github.com/jambotours/jambo-go/internal/clock"
	redisx "github.com/jambotours/jambo-go/internal/redis"
	postgresrepo "github.com/jambotours/jambo-go/internal/repository/postgres"
	redisrepo "github.com/jambotours/jambo-go/internal/repository/redis"
	"github.com/jambotours/jambo-go/internal/service/availability"
	"github.com/jambotours/jambo-go/internal/service/holds"
	"github.com/jambotours/jambo-go/internal/service/inventory"
	"github.com/jambotours/jambo-go/internal/service/query"
)

type Services struct {
	Availability *availability.Service
	Holds        *holds.Service
	Inventory    *inventory.Service
	Query        *query.Service
}

type Config struct {
	Availability availability.Config
	Query        query.Config
}

func NewServices(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.ResourcesPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	clk clock.Clock,
	cfg Config,
) *Services {
	return &Services{
		Availability: availability.New(store, cache, pubsub, limiter, clk, cfg.Availability),
		Holds:        holds.New(store, cache, pubsub, clk),
		Inventory:    inventory.New(store, cache, pubsub),
		Query:        query.New(store, cache, clk, cfg.Query),
	}
}
