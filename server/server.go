package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sheikhrachel/gol-arena/model"
)

const (
	defaultTickInterval   = 500 * time.Millisecond
	defaultRequestTimeout = 200 * time.Millisecond
	defaultMaxSize        = 512
)

// Option configures a WorldServer
type Option func(*WorldServer)

// WithTickInterval sets how often Loop advances the world while playing
func WithTickInterval(d time.Duration) Option {
	return func(s *WorldServer) {
		s.tickInterval = d
	}
}

// WithRequestTimeout bounds how long a request waits for the world loop
func WithRequestTimeout(d time.Duration) Option {
	return func(s *WorldServer) {
		s.requestTimeout = d
	}
}

// WithMaxSize caps the side length a client may resize the world to
func WithMaxSize(size int) Option {
	return func(s *WorldServer) {
		s.maxSize = size
	}
}

// WithPlaying sets whether the world starts advancing on its own
func WithPlaying(playing bool) Option {
	return func(s *WorldServer) {
		s.playing = playing
	}
}

func NewWorldServer(grid *model.Grid, engine *model.Engine, store Store, opts ...Option) *WorldServer {
	if store == nil {
		store = NopStore{}
	}
	s := &WorldServer{
		grid:           grid,
		engine:         engine,
		store:          store,
		hub:            NewHub(),
		tickInterval:   defaultTickInterval,
		requestTimeout: defaultRequestTimeout,
		maxSize:        defaultMaxSize,
		playing:        true,
		requests:       make(chan command),
		upgrader:       &websocket.Upgrader{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *WorldServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Restore loads the last stored world into the grid. It must run before Loop.
// A missing snapshot is not an error; the freshly randomized grid is kept.
func (s *WorldServer) Restore(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		log.Info("WorldServer.Restore no stored world, keeping random grid")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "[Restore] failed to load snapshot")
	}
	if err = s.grid.Restore(snap); err != nil {
		return errors.Wrap(err, "[Restore] stored snapshot rejected")
	}
	log.Infof("WorldServer.Restore restored %dx%d world", s.grid.Size(), s.grid.Size())
	return nil
}

// Loop owns the grid until ctx is done: it steps the world on every tick while
// playing and applies queued requests in between.
func (s *WorldServer) Loop(ctx context.Context) {
	log.Infof("WorldServer.Loop starting, tick %s", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	defer s.hub.Close()

	s.publish(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("WorldServer.Loop stopped")
			return
		case <-ticker.C:
			if s.playing {
				s.step()
				s.publish(ctx)
			}
		case cmd := <-s.requests:
			err := cmd.apply()
			if err == nil && cmd.publish {
				s.publish(ctx)
			}
			// reply is buffered, a requester that gave up never blocks the loop
			cmd.reply <- result{message: s.message(), err: err}
		}
	}
}

func (s *WorldServer) step() {
	s.engine.Step(s.grid)
	s.generation++

	hash := s.grid.Hash()
	stagnant := s.history.IsStagnant(hash)
	if stagnant && !s.stagnant {
		log.Infof("WorldServer world stagnant at generation %d", s.generation)
	}
	s.stagnant = stagnant
	s.history.Observe(hash)
}

func (s *WorldServer) resetHistory() {
	s.history.Reset()
	s.stagnant = false
}

func (s *WorldServer) message() WorldMessage {
	return WorldMessage{
		Generation: s.generation,
		Size:       s.grid.Size(),
		Playing:    s.playing,
		Stagnant:   s.stagnant,
		Population: s.grid.Population(),
		Cells:      s.grid.Snapshot(),
	}
}

func (s *WorldServer) publish(ctx context.Context) {
	msg := s.message()
	if err := s.store.Save(ctx, msg.Cells); err != nil {
		log.Errorf("WorldServer.publish cant save snapshot: %v", err)
	}
	s.hub.Broadcast(msg)
}

// submit hands apply to Loop and waits for the resulting state
func (s *WorldServer) submit(ctx context.Context, apply func() error, publish bool) (WorldMessage, error) {
	cmd := command{apply: apply, publish: publish, reply: make(chan result, 1)}

	select {
	case s.requests <- cmd:
	case <-time.After(s.requestTimeout):
		return WorldMessage{}, errors.Wrap(errTimeout, "[submit] request queue")
	case <-ctx.Done():
		return WorldMessage{}, ctx.Err()
	}

	select {
	case res := <-cmd.reply:
		return res.message, res.err
	case <-time.After(s.requestTimeout):
		return WorldMessage{}, errors.Wrap(errTimeout, "[submit] reply")
	case <-ctx.Done():
		return WorldMessage{}, ctx.Err()
	}
}
