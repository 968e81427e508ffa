package api

import (
	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/engine"
	"github.com/stylewise/wardrobe-api/store"
)

var (
	garments    *store.Garments
	occasions   *store.Occasions
	stylers     *store.Stylers
	partners    *store.Partners
	wearLedger  *store.WearLedger
	bootstrap   *store.Bootstrap

	suggester    *engine.Suggester
	ledger       *engine.Ledger
	healthScorer *engine.HealthScorer
)

// Init wires the stores and the recommendation engine. Must run after the
// MongoDB connection is established.
func Init() {
	garments = store.NewGarments()
	occasions = store.NewOccasions()
	stylers = store.NewStylers()
	partners = store.NewPartners()
	wearLedger = store.NewWearLedger()
	bootstrap = store.NewBootstrap()

	profiles := engine.NewProfileResolver(stylers, occasions)
	suggester = engine.NewSuggester(occasions, profiles, garments, partners)
	ledger = engine.NewLedger(wearLedger, garments, engine.DedupPolicy(config.WearDedupPolicy))
	healthScorer = engine.NewHealthScorer(garments, ledger)
}
