package main

import (
	"net/http"

	"foodflow-frontend/config"
	httpapi "foodflow-frontend/internal/api/http"
	"foodflow-frontend/internal/auth"
	"foodflow-frontend/internal/backend"
	"foodflow-frontend/internal/draft"
	"foodflow-frontend/internal/service"
	"foodflow-frontend/internal/session"
)

func main() {
	cfg := config.Load()

	rdb := config.MustInitRedis()
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	client := backend.NewClient(cfg.BackendAPIURL, &http.Client{})
	authMgr := auth.NewManager(client, sessions)
	views := service.NewViewService(client)
	drafts := draft.NewHandoff(sessions, client)
	qr := service.TrackingQRGenerator{BaseURL: cfg.PublicBaseURL}

	handler := httpapi.NewHandler(authMgr, sessions, client, views, drafts, qr)
	httpapi.StartServer(cfg.ListenAddr, httpapi.NewRouter(handler))
}
