package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"fundbackend/appctx"
	"fundbackend/core"
	"fundbackend/middleware"
	"fundbackend/models/api"
)

type DiscordHTTPHandler struct {
	handler *DiscordAPIHandler
}

func NewDiscordHTTPHandler(handler *DiscordAPIHandler) *DiscordHTTPHandler {
	return &DiscordHTTPHandler{
		handler: handler,
	}
}

func (h *DiscordHTTPHandler) HandleAuthorizeServer(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔗 Discord bot authorization request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		h.writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	organizationName := r.URL.Query().Get("organization_name")
	if organizationName == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "organization_name is required")
		return
	}

	authorizationURL, err := h.handler.ServerAuthorizationURL(r.Context(), user, organizationName)
	if err != nil {
		h.writeDomainError(w, err, "failed to start discord bot authorization")
		return
	}

	http.Redirect(w, r, authorizationURL, http.StatusSeeOther)
}

func (h *DiscordHTTPHandler) HandleServerCallback(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔗 Discord bot install callback received from %s", r.RemoteAddr)

	query := r.URL.Query()
	state := query.Get("state")
	if state == "" {
		log.Printf("❌ Discord bot install callback without state")
		h.writeErrorResponse(w, http.StatusUnauthorized, "no state")
		return
	}

	redirectURL, err := h.handler.CompleteServerInstall(r.Context(), query.Get("code"), state)
	if err != nil {
		h.writeDomainError(w, err, "failed to complete discord bot install")
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func (h *DiscordHTTPHandler) HandleAuthorizeUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔗 Discord account authorization request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		h.writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	authorizationURL, err := h.handler.UserAuthorizationURL(r.Context(), user)
	if err != nil {
		h.writeDomainError(w, err, "failed to start discord account authorization")
		return
	}

	http.Redirect(w, r, authorizationURL, http.StatusSeeOther)
}

func (h *DiscordHTTPHandler) HandleUserCallback(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔗 Discord account callback received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		h.writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query()
	state := query.Get("state")
	if state == "" {
		log.Printf("❌ Discord account callback without state")
		h.writeErrorResponse(w, http.StatusUnauthorized, "no state")
		return
	}

	redirectURL, err := h.handler.CompleteUserLink(r.Context(), user, query.Get("code"), state)
	if err != nil {
		h.writeDomainError(w, err, "failed to link discord account")
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func (h *DiscordHTTPHandler) HandleServerLookup(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Discord server lookup request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		h.writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	server, err := h.handler.LookupServer(r.Context(), user, r.URL.Query().Get("organization_name"))
	if err != nil {
		h.writeDomainError(w, err, "failed to lookup discord server")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainDiscordServerToAPIDiscordServer(server))
}

func (h *DiscordHTTPHandler) HandleUnlinkServer(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Discord server unlink request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		h.writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.handler.UnlinkServer(r.Context(), user, r.URL.Query().Get("organization_name")); err != nil {
		h.writeDomainError(w, err, "failed to unlink discord server")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DiscordHTTPHandler) HandleGuildLookup(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Discord guild lookup request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		h.writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	guild, err := h.handler.LookupGuild(r.Context(), user, r.URL.Query().Get("organization_name"))
	if err != nil {
		h.writeDomainError(w, err, "failed to lookup discord guild")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, guild)
}

func (h *DiscordHTTPHandler) HandleGetDiscordUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("👤 Discord user lookup request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		h.writeErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	me, err := h.handler.DiscordUser(r.Context(), user)
	if err != nil {
		h.writeDomainError(w, err, "failed to lookup discord user")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DiscordgoUserToAPIDiscordUser(me))
}

// SetupEndpoints registers the Discord integration routes on a router mounted at /api/v1
func (h *DiscordHTTPHandler) SetupEndpoints(router *mux.Router, authMiddleware *middleware.ClerkAuthMiddleware) {
	log.Printf("🚀 Registering Discord integration endpoints")

	discord := router.PathPrefix("/integrations/discord").Subrouter()

	discord.HandleFunc("/authorize_server", authMiddleware.WithAuth(h.HandleAuthorizeServer)).Methods("GET")
	log.Printf("✅ GET /integrations/discord/authorize_server endpoint registered")
	discord.HandleFunc("/callback", h.HandleServerCallback).Methods("GET")
	log.Printf("✅ GET /integrations/discord/callback endpoint registered")

	discord.HandleFunc("/authorize_user", authMiddleware.WithAuth(h.HandleAuthorizeUser)).Methods("GET")
	log.Printf("✅ GET /integrations/discord/authorize_user endpoint registered")
	discord.HandleFunc("/user_callback", authMiddleware.WithAuth(h.HandleUserCallback)).Methods("GET")
	log.Printf("✅ GET /integrations/discord/user_callback endpoint registered")

	discord.HandleFunc("/servers/lookup", authMiddleware.WithAuth(h.HandleServerLookup)).Methods("GET")
	log.Printf("✅ GET /integrations/discord/servers/lookup endpoint registered")
	discord.HandleFunc("/servers", authMiddleware.WithAuth(h.HandleUnlinkServer)).Methods("DELETE")
	log.Printf("✅ DELETE /integrations/discord/servers endpoint registered")
	discord.HandleFunc("/guild/lookup", authMiddleware.WithAuth(h.HandleGuildLookup)).Methods("GET")
	log.Printf("✅ GET /integrations/discord/guild/lookup endpoint registered")
	discord.HandleFunc("/user", authMiddleware.WithAuth(h.HandleGetDiscordUser)).Methods("GET")
	log.Printf("✅ GET /integrations/discord/user endpoint registered")

	log.Printf("✅ All Discord integration endpoints registered successfully")
}

// writeDomainError maps core sentinel errors to their status codes and hides everything else behind a 500
func (h *DiscordHTTPHandler) writeDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		log.Printf("⚠️ %s: %v", fallback, err)
		h.writeErrorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrUnauthorized):
		log.Printf("❌ %s: %v", fallback, err)
		h.writeErrorResponse(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, core.ErrForbidden):
		log.Printf("❌ %s: %v", fallback, err)
		h.writeErrorResponse(w, http.StatusForbidden, "forbidden")
	default:
		log.Printf("❌ %s: %v", fallback, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}

func (h *DiscordHTTPHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSONResponse(w, statusCode, api.ErrorResponse{Error: message})
}

func (h *DiscordHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}
