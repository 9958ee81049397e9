package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"debator/config"
	"debator/debate"
	"debator/models"
)

type turnProducer interface {
	ProduceTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error)
}

type debateService interface {
	Start(ctx context.Context, char1, char2, userSide string) (*models.DebateReply, error)
	Turn(ctx context.Context, debateID, userText string) (*models.DebateReply, error)
	Portrait(ctx context.Context, characterName string) (string, error)
}

type Server struct {
	cfg     *config.Config
	turns   turnProducer
	debates debateService
	logger  *slog.Logger
}

func (srv *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", srv.pingHandler)
	mux.HandleFunc("POST /v1/turn", srv.turnHandler)
	mux.HandleFunc("POST /v1/debate/start", srv.startDebateHandler)
	mux.HandleFunc("POST /v1/debate/turn", srv.debateTurnHandler)
	mux.HandleFunc("POST /v1/image", srv.imageHandler)
	mux.Handle("GET /static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir(srv.cfg.StaticDir))))
	return mux
}

func (srv *Server) ListenToRequests() error {
	server := &http.Server{
		Addr:    srv.cfg.ListenAddr,
		Handler: srv.routes(),
		// provider calls can eat the whole retry budget, keep write generous
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 90,
	}
	srv.logger.Info("listening", "addr", server.Addr)
	return server.ListenAndServe()
}

func (srv *Server) pingHandler(w http.ResponseWriter, req *http.Request) {
	srv.writeJSON(w, http.StatusOK, map[string]string{"message": "debator backend is running"})
}

func (srv *Server) turnHandler(w http.ResponseWriter, req *http.Request) {
	turnReq := models.TurnRequest{}
	if err := json.NewDecoder(req.Body).Decode(&turnReq); err != nil {
		srv.writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}
	resp, err := srv.turns.ProduceTurn(req.Context(), turnReq)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, resp)
}

func (srv *Server) startDebateHandler(w http.ResponseWriter, req *http.Request) {
	body := struct {
		Char1    string `json:"char1"`
		Char2    string `json:"char2"`
		UserSide string `json:"user_side"`
	}{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		srv.writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}
	reply, err := srv.debates.Start(req.Context(), body.Char1, body.Char2, body.UserSide)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, reply)
}

func (srv *Server) debateTurnHandler(w http.ResponseWriter, req *http.Request) {
	body := struct {
		DebateID string `json:"debate_id"`
		UserText string `json:"user_text"`
	}{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		srv.writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}
	reply, err := srv.debates.Turn(req.Context(), body.DebateID, body.UserText)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, reply)
}

func (srv *Server) imageHandler(w http.ResponseWriter, req *http.Request) {
	body := struct {
		CharacterName string `json:"character_name"`
	}{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		srv.writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}
	imageURL, err := srv.debates.Portrait(req.Context(), body.CharacterName)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		srv.logger.Error("failed to write response", "error", err)
	}
}

func (srv *Server) writeErrMsg(w http.ResponseWriter, status int, msg string) {
	srv.writeJSON(w, status, map[string]string{"error": msg})
}

func (srv *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, debate.ErrEmptyUtterance), errors.Is(err, debate.ErrMissingCharacter):
		srv.writeErrMsg(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, debate.ErrDebateNotFound):
		srv.writeErrMsg(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, context.Canceled):
		// client is gone, nothing sensible to write
		return
	}
	var provErr *models.ProviderError
	if errors.As(err, &provErr) {
		status := http.StatusBadGateway
		switch provErr.Kind {
		case models.ErrTimeout:
			status = http.StatusGatewayTimeout
		case models.ErrRateLimited:
			status = http.StatusTooManyRequests
		}
		srv.logger.Error("provider failure surfaced", "provider", provErr.Provider, "kind", provErr.Kind.String(), "code", provErr.Code)
		srv.writeJSON(w, status, map[string]string{
			"error": "provider failure",
			"code":  provErr.Kind.String(),
		})
		return
	}
	srv.logger.Error("unhandled error", "error", err)
	srv.writeErrMsg(w, http.StatusInternalServerError, "internal error")
}
