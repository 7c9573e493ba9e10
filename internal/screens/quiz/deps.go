package quiz

import (
	clog "github.com/charmbracelet/log"

	"github.com/abhisek/mathdrill/internal/countdown"
	"github.com/abhisek/mathdrill/internal/mistakes"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

// Deps are the services shared by the quiz screens.
type Deps struct {
	Mistakes  *mistakes.Repo
	History   store.SessionRepo
	Generator *problemgen.Generator
	Logger    *clog.Logger

	// Defaults seeds the settings form and review timing.
	Defaults session.Config

	// Scheduler overrides the Bubble Tea tick scheduler. Tests set it to
	// a manual clock.
	Scheduler countdown.Scheduler
}
