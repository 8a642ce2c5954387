package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/wacky444/Zarka-sub000/internal/config"
	"github.com/wacky444/Zarka-sub000/internal/engine"
	"github.com/wacky444/Zarka-sub000/internal/storage"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchNotInProgress  = errors.New("match is not in progress")
	ErrMatchAlreadyStarted = errors.New("match already started")
	ErrMatchFull           = errors.New("match is full")
	ErrPlayerNotInMatch    = errors.New("player not in match")
	ErrUnknownAction       = errors.New("unknown action")
	ErrActionNotDeveloped  = errors.New("action not developed")
	ErrWrongSlotCategory   = errors.New("action does not fit this plan slot")
	ErrActionOnCooldown    = errors.New("action is on cooldown")
	ErrNegativeEffort      = errors.New("extra effort must not be negative")
	ErrCharacterDown       = errors.New("character is incapacitated")
	ErrReplayNotFound      = errors.New("replay not found")
)

// Service wires the resolution engine to the persistent store and carries
// the match-creation tuning from the loaded config.
type Service struct {
	repo   storage.Repository
	eng    *engine.Engine
	cfg    *config.Loaded
	newRng func() engine.Rand
}

// New creates the service. rngFactory may be nil, in which case a
// time-seeded source is minted per resolution pass.
func New(repo storage.Repository, eng *engine.Engine, cfg *config.Loaded, rngFactory func() engine.Rand) *Service {
	if rngFactory == nil {
		rngFactory = func() engine.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	return &Service{repo: repo, eng: eng, cfg: cfg, newRng: rngFactory}
}
