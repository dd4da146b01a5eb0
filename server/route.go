package server

import (
	"encoding/json"
	"net/http"

	"github.com/matryer/way"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	uriPlay         = "/play"
	uriWorld        = "/world"
	uriRandomize    = "/randomize"
	uriSetWorldCell = "/setWorldCell"
	uriUpdateWorld  = "/updateWorld"
	uriSetWorldSize = "/setWorldSize"
	uriSetPlaying   = "/setPlaying"
	uriCleanWorld   = "/cleanWorld"
	uriPattern      = "/pattern"
)

func (s *WorldServer) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", uriPlay, s.handlePlay())
	s.router.HandleFunc("GET", uriWorld, s.handleWorld())
	s.router.HandleFunc("POST", uriRandomize, s.handleRandomize())
	s.router.HandleFunc("POST", uriSetWorldCell, s.handleSetWorldCell())
	s.router.HandleFunc("POST", uriUpdateWorld, s.handleUpdateWorld())
	s.router.HandleFunc("POST", uriSetWorldSize, s.handleSetWorldSize())
	s.router.HandleFunc("POST", uriSetPlaying, s.handleSetPlaying())
	s.router.HandleFunc("POST", uriCleanWorld, s.handleCleanWorld())
	s.router.HandleFunc("POST", uriPattern, s.handlePattern())
}

func (s *WorldServer) handleWorld() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, func() error { return nil }, false)
	}
}

func (s *WorldServer) handleRandomize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, func() error {
			s.grid.Randomize()
			s.resetHistory()
			return nil
		}, true)
	}
}

func (s *WorldServer) handleSetWorldCell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cellRequest
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.X == nil || req.Y == nil {
			writeError(w, r, errors.Wrap(errBadRequest, "x and y are required"))
			return
		}
		s.respond(w, r, func() error {
			if err := s.grid.ToggleAlive(*req.Y, *req.X); err != nil {
				return err
			}
			s.resetHistory()
			return nil
		}, true)
	}
}

func (s *WorldServer) handleUpdateWorld() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, func() error {
			s.step()
			return nil
		}, true)
	}
}

func (s *WorldServer) handleSetWorldSize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sizeRequest
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.Size > s.maxSize {
			writeError(w, r, errors.Wrapf(errBadRequest, "size %d exceeds max %d", req.Size, s.maxSize))
			return
		}
		s.respond(w, r, func() error {
			if err := s.grid.Resize(req.Size); err != nil {
				return err
			}
			s.resetHistory()
			return nil
		}, true)
	}
}

func (s *WorldServer) handleSetPlaying() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := s.submit(r.Context(), func() error {
			s.playing = !s.playing
			log.Infof("WorldServer playing=%v", s.playing)
			return nil
		}, true)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, playingResponse{Playing: msg.Playing})
	}
}

func (s *WorldServer) handleCleanWorld() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, func() error {
			s.grid.Clean()
			s.resetHistory()
			return nil
		}, true)
	}
}

func (s *WorldServer) handlePattern() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req patternRequest
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		s.respond(w, r, func() error {
			if err := s.grid.Place(req.Name, req.Y, req.X, req.Color); err != nil {
				return err
			}
			s.resetHistory()
			return nil
		}, true)
	}
}

// respond runs apply on the world loop and writes the resulting world state
func (s *WorldServer) respond(w http.ResponseWriter, r *http.Request, apply func() error, publish bool) {
	msg, err := s.submit(r.Context(), apply, publish)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrapf(errBadRequest, "cant decode body: %v", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := log.WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Errorf("request failed: %v", err)
	} else {
		entry.Warnf("request rejected: %v", err)
	}
	writeJSON(w, status, errorMessage{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("cant encode response: %v", err)
	}
}
