package cli

import (
	services "github.com/felixgeelhaar/nudge/internal/engagement/application/services"
	engagementDomain "github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/delivery"
	habitsServices "github.com/felixgeelhaar/nudge/internal/habits/application/services"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
)

// App bundles the wired dependencies the commands need. It is populated by
// the entry point so commands never construct infrastructure themselves.
type App struct {
	Habits       habitsDomain.Repository
	HabitService *habitsServices.HabitService
	Store        engagementDomain.BehaviorStore
	Orchestrator *services.Orchestrator
	Tracker      *services.AdaptationTracker
	Channel      *delivery.MemoryChannel
}

var app *App

// SetApp installs the application container.
func SetApp(a *App) {
	app = a
}

// GetApp returns the application container, or nil if wiring failed.
func GetApp() *App {
	return app
}
