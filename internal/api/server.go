package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"starmaker/internal/config"
	"starmaker/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		if s.cfg.AuthToken != "" {
			r.Use(s.authMiddleware)
		}

		r.Post("/game", s.handleNewGame)
		r.Get("/game", s.handleSnapshot)
		r.Delete("/game", s.handleReset)
		r.Get("/game/summary", s.handleSummary)
		r.Get("/catalog", s.handleCatalog)

		r.Post("/team/hire", s.handleHire)
		r.Post("/team/fire", s.handleFire)

		r.Post("/studio/equipment", s.handleBuyEquipment)
		r.Post("/studio/rooms", s.handleBuildRoom)
		r.Post("/studio/upgrades", s.handleBuyUpgrade)
		r.Post("/studio/tier", s.handleUpgradeTier)

		r.Post("/songs", s.handleRecordSong)
		r.Post("/songs/{id}/video", s.handleShootVideo)

		r.Post("/shows", s.handlePerform)
		r.Post("/media/events", s.handleMediaEvent)
		r.Post("/media/press", s.handlePressConference)

		r.Post("/social/generate", s.handleGeneratePost)
		r.Post("/social/posts", s.handlePublishPost)

		r.Post("/relationships/collaborations", s.handleCollaborate)
		r.Post("/relationships/rivalries", s.handleRivalry)
		r.Post("/relationships/entourage", s.handleEntourage)

		r.Post("/contracts", s.handleSignContract)
		r.Post("/brand-deals", s.handleSignBrandDeal)
		r.Post("/investments", s.handleInvest)
		r.Post("/luxury", s.handleBuyLuxury)
		r.Post("/fanclub", s.handleFanClub)

		r.Post("/merch", s.handleLaunchMerch)
		r.Post("/merch/drops", s.handleMerchDrop)
		r.Post("/fashion", s.handleFashionLine)
		r.Post("/popups", s.handlePopupStore)

		r.Post("/awards/claim", s.handleClaimAwards)
		r.Post("/rest", s.handleRest)
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" || token != s.cfg.AuthToken {
			writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name      string `json:"name"`
		StageName string `json:"stageName"`
		Genre     string `json:"genre"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.StageName) == "" || strings.TrimSpace(in.Genre) == "" {
		writeError(w, http.StatusBadRequest, "name, stageName and genre are required")
		return
	}
	state, err := s.game.NewGame(r.Context(), in.Name, in.StageName, in.Genre)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.Current(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.game.ResetGame(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.Current(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game.Summarize(state))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Balance())
}

func (s *Server) handleHire(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Role        string `json:"role"`
		CandidateID string `json:"candidateId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.Hire(r.Context(), in.Role, in.CandidateID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.Fire(r.Context(), in.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleBuyEquipment(w http.ResponseWriter, r *http.Request) {
	s.idAction(w, r, s.game.PurchaseEquipment)
}

func (s *Server) handleBuildRoom(w http.ResponseWriter, r *http.Request) {
	s.idAction(w, r, s.game.BuildRoom)
}

func (s *Server) handleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	s.idAction(w, r, s.game.PurchaseUpgrade)
}

func (s *Server) handleUpgradeTier(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.UpgradeStudioTier(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleRecordSong(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title string `json:"title"`
		Type  string `json:"type"`
		Theme string `json:"theme"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	state, err := s.game.RecordSong(r.Context(), in.Title, in.Type, in.Theme)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleShootVideo(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DirectorID string `json:"directorId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.ShootMusicVideo(r.Context(), chi.URLParam(r, "id"), in.DirectorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePerform(w http.ResponseWriter, r *http.Request) {
	var in struct {
		VenueID string `json:"venueId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.PerformAtVenue(r.Context(), in.VenueID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleMediaEvent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EventID string `json:"eventId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.BookMediaEvent(r.Context(), in.EventID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePressConference(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Topic string `json:"topic"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.HoldPressConference(r.Context(), in.Topic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleGeneratePost(w http.ResponseWriter, r *http.Request) {
	text, err := s.game.GeneratePostText(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": text})
}

func (s *Server) handlePublishPost(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.PublishPost(r.Context(), in.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleCollaborate(w http.ResponseWriter, r *http.Request) {
	s.nameAction(w, r, s.game.Collaborate)
}

func (s *Server) handleRivalry(w http.ResponseWriter, r *http.Request) {
	s.nameAction(w, r, s.game.StartRivalry)
}

func (s *Server) handleEntourage(w http.ResponseWriter, r *http.Request) {
	s.nameAction(w, r, s.game.AddToEntourage)
}

func (s *Server) handleSignContract(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ContractID string `json:"contractId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.SignContract(r.Context(), in.ContractID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSignBrandDeal(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DealID string `json:"dealId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.SignBrandDeal(r.Context(), in.DealID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleInvest(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OptionID string `json:"optionId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.Invest(r.Context(), in.OptionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleBuyLuxury(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ItemID string `json:"itemId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.BuyLuxuryItem(r.Context(), in.ItemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleFanClub(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Tier int `json:"tier"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.UpgradeFanClub(r.Context(), in.Tier)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleLaunchMerch(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TemplateID string `json:"templateId"`
		Name       string `json:"name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.LaunchMerch(r.Context(), in.TemplateID, in.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleMerchDrop(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.RunMerchDrop(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleFashionLine(w http.ResponseWriter, r *http.Request) {
	s.nameAction(w, r, s.game.LaunchFashionLine)
}

func (s *Server) handlePopupStore(w http.ResponseWriter, r *http.Request) {
	var in struct {
		City string `json:"city"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.game.OpenPopupStore(r.Context(), in.City)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleClaimAwards(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.ClaimAwards(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleRest(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.Rest(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// idAction handles the common body shape {"id": "..."}.
func (s *Server) idAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*game.GameState, error)) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := fn(r.Context(), in.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// nameAction handles the common body shape {"name": "..."}.
func (s *Server) nameAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, name string) (*game.GameState, error)) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	state, err := fn(r.Context(), in.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoGame):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrUnknownItem), errors.Is(err, game.ErrSongNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds), errors.Is(err, game.ErrInsufficientEnergy):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrAlreadyOwned), errors.Is(err, game.ErrRoleOccupied), errors.Is(err, game.ErrDuplicateRelationship):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrRequirementsNotMet):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
