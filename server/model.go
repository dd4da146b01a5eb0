package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-arena/model"
)

var (
	errTimeout    = errors.New("world loop did not answer in time")
	errBadRequest = errors.New("bad request")
)

// WorldServer hosts a single shared world. One goroutine, Loop, owns the grid;
// ticks and HTTP requests reach it through channels and are applied one at a time.
type WorldServer struct {
	grid   *model.Grid
	engine *model.Engine
	store  Store
	hub    *Hub

	tickInterval   time.Duration
	requestTimeout time.Duration
	maxSize        int

	// owned by Loop
	playing    bool
	generation int
	stagnant   bool
	history    model.History

	requests chan command
	router   *way.Router
	upgrader *websocket.Upgrader
}

// WorldMessage is the state pushed to subscribers and returned by the HTTP API
type WorldMessage struct {
	Generation int                  `json:"generation"`
	Size       int                  `json:"size"`
	Playing    bool                 `json:"playing"`
	Stagnant   bool                 `json:"stagnant"`
	Population [model.NumColors]int `json:"population"`
	Cells      model.Snapshot       `json:"cells"`
}

type errorMessage struct {
	Error string `json:"error"`
}

// command runs on the Loop goroutine. publish asks Loop to persist and
// broadcast the new state when apply succeeds.
type command struct {
	apply   func() error
	publish bool
	reply   chan result
}

type result struct {
	message WorldMessage
	err     error
}

type cellRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type sizeRequest struct {
	Size int `json:"size"`
}

type patternRequest struct {
	Name  string      `json:"name"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color model.Color `json:"color"`
}

type playingResponse struct {
	Playing bool `json:"playing"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, errBadRequest),
		errors.Is(err, model.ErrInvalidArgument),
		errors.Is(err, model.ErrIndexOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
