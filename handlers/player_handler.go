package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gncc/cricket-dashboard/cards"
	"github.com/gncc/cricket-dashboard/dashboard"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/middleware"
	"github.com/gncc/cricket-dashboard/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
	logger        *slog.Logger
}

func NewPlayerHandler(playerService services.PlayerService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		logger:        logger,
	}
}

func (h *PlayerHandler) section(r *http.Request) (*dashboard.PlayersSection, *noticeRecorder) {
	session, _ := middleware.SessionFromContext(r.Context())
	notices := &noticeRecorder{}
	return dashboard.NewPlayersSection(session, h.playerService, notices, h.logger), notices
}

// ListPlayers godoc
// @Summary List the squad
// @Tags players
// @Produce json
// @Success 200 {object} map[string]interface{} "Players"
// @Failure 401 {object} map[string]string "Not signed in"
// @Failure 500 {object} map[string]string "Failed to load players"
// @Security BearerAuth
// @Router /api/players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	section, _ := h.section(r)

	if err := section.Load(r.Context()); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{"players": section.Players()}
	if len(section.Players()) == 0 {
		response["empty_text"] = section.EmptyText()
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePlayer godoc
// @Summary Add a player
// @Tags players
// @Description Adds a player to the squad. Accepts JSON or multipart form data with an optional avatar file.
// @Accept json,mpfd
// @Produce json
// @Param body body forms.PlayerDraft true "Player details"
// @Success 201 {object} map[string]interface{} "Player added"
// @Failure 400 {object} map[string]string "Malformed request"
// @Failure 403 {object} map[string]string "Captains only"
// @Failure 422 {object} map[string]string "Field errors"
// @Failure 503 {object} map[string]string "Uploads not configured"
// @Security BearerAuth
// @Router /api/players [post]
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	section, notices := h.section(r)
	form := section.AddPlayerForm()
	if form == nil {
		forbiddenResponse(w, r, "only captains can add players")
		return
	}

	draft := forms.DefaultPlayerDraft()
	cleanup := func() {}
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		draft = playerDraftFromForm(r)
		avatar, closeAvatar, err := formFile(r, "avatar")
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		cleanup = closeAvatar
		form.AttachAvatar(avatar)
	} else if err := readJSON(w, r, &draft); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer cleanup()

	form.Open()
	form.SetDraft(draft)
	if err := form.Submit(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"notification": notices.Last(),
		"players":      section.Players(),
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayer godoc
// @Summary Remove a player
// @Tags players
// @Description Removes a player once confirmed. Without confirm=true nothing is deleted and the prompt is returned.
// @Produce json
// @Param playerID path string true "Player ID"
// @Param confirm query bool false "Confirms the removal"
// @Success 200 {object} map[string]interface{} "Player removed"
// @Failure 400 {object} map[string]string "Confirmation required"
// @Failure 403 {object} map[string]string "Captains only"
// @Failure 404 {object} map[string]string "Player not found"
// @Security BearerAuth
// @Router /api/players/{playerID} [delete]
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	section, notices := h.section(r)
	if err := section.Load(r.Context()); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	card := section.Card(playerID)
	if card == nil {
		notFoundResponse(w, r)
		return
	}

	var prompt string
	attempted, err := card.Delete(r.Context(), cards.ConfirmFunc(func(p string) bool {
		prompt = p
		return confirmed
	}))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !attempted {
		errorResponse(w, r, http.StatusBadRequest, jsonResponse{
			"message": "removal must be confirmed with confirm=true",
			"prompt":  prompt,
		})
		return
	}

	response := jsonResponse{
		"notification": notices.Last(),
		"players":      section.Players(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
