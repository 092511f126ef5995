package motor

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/motorkit/motor/actor"
	"github.com/motorkit/motor/merror"
	"github.com/motorkit/motor/worker"
	"github.com/motorkit/motor/world"
)

// Engine bundles a geometry backend with shared tuning and hands out actors.
// Each actor is single-threaded on its own; the engine only guards its
// registry, so different actors may be ticked from different goroutines.
type Engine struct {
	log  *logrus.Logger
	opts actor.Options

	world *world.World

	actorMutex sync.Mutex
	actors     map[string]*actor.Actor
}

// New returns a new engine with its own empty world.
func New(log *logrus.Logger, opts actor.Options) *Engine {
	return &Engine{
		log:    log,
		opts:   opts,
		world:  world.New(),
		actors: make(map[string]*actor.Actor),
	}
}

// World returns the engine's geometry backend.
func (e *Engine) World() *world.World { return e.world }

// Spawn creates and registers an actor under the given name.
func (e *Engine) Spawn(name string) (*actor.Actor, error) {
	var fl logrus.FieldLogger
	if e.log != nil {
		fl = e.log.WithField("actor", name)
	}
	a, err := actor.New(fl, e.world, e.opts)
	if err != nil {
		return nil, err
	}

	e.actorMutex.Lock()
	defer e.actorMutex.Unlock()
	if _, ok := e.actors[name]; ok {
		a.Close()
		return nil, merror.New("motor: actor %q already exists", name)
	}
	e.actors[name] = a
	return a, nil
}

// Actor returns the registered actor with the given name.
func (e *Engine) Actor(name string) (*actor.Actor, bool) {
	e.actorMutex.Lock()
	defer e.actorMutex.Unlock()
	a, ok := e.actors[name]
	return a, ok
}

// Despawn removes and closes the named actor.
func (e *Engine) Despawn(name string) {
	e.actorMutex.Lock()
	a, ok := e.actors[name]
	delete(e.actors, name)
	e.actorMutex.Unlock()
	if ok {
		a.Close()
	}
}

// Tick advances every registered actor by one step. integrate runs between
// the two phases and stands in for the host's force integration; it may be
// nil. Actors never touch each other's state, so their ticks run in parallel
// on the worker pool; Tick returns once all of them have finished.
func (e *Engine) Tick(dt float32, integrate func(*actor.Actor)) {
	e.actorMutex.Lock()
	ticks := make([]func(), 0, len(e.actors))
	for _, a := range e.actors {
		a := a
		ticks = append(ticks, func() {
			a.PreIntegration(dt)
			if integrate != nil {
				integrate(a)
			}
			a.PostIntegration(dt)
		})
	}
	e.actorMutex.Unlock()

	worker.SubmitAndWait(ticks...)
}
