package overload

import (
	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/progression"
	"github.com/2beens/overload/internal/overload/split"
	"github.com/2beens/overload/internal/overload/strength"
	"github.com/2beens/overload/internal/overload/volume"
)

const resolverCacheSizeMB = 4

// Components is an engine wired over one store, with the pieces the outer
// surfaces need next to it.
type Components struct {
	Catalog *catalog.Resolver
	Tracker *strength.Tracker
	Engine  *Engine
}

// Wire builds every engine component over store. All of them share the same
// catalog resolver.
func Wire(store strength.Store, c *catalog.Catalog, progressionCfg progression.Config, cfg Config) *Components {
	resolver := catalog.NewResolver(c, resolverCacheSizeMB)
	tracker := strength.NewTracker(store)
	return &Components{
		Catalog: resolver,
		Tracker: tracker,
		Engine: NewEngine(
			tracker,
			volume.NewTracker(resolver),
			progression.NewAdvisor(tracker, resolver, progressionCfg),
			split.NewOptimizer(resolver),
			cfg,
		),
	}
}
