package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/dashboard"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/middleware"
	"github.com/gncc/cricket-dashboard/services"
)

var errMatchNotScorable = errors.New("scores can no longer be changed for this match")

type MatchHandler struct {
	matchService services.MatchService
	feed         dashboard.ChangeFeed
	logger       *slog.Logger
}

func NewMatchHandler(matchService services.MatchService, feed dashboard.ChangeFeed, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		feed:         feed,
		logger:       logger,
	}
}

func (h *MatchHandler) section(r *http.Request) (*dashboard.MatchesSection, *noticeRecorder) {
	session, _ := middleware.SessionFromContext(r.Context())
	notices := &noticeRecorder{}
	return dashboard.NewMatchesSection(session, h.matchService, h.feed, notices, h.logger), notices
}

// ListMatches godoc
// @Summary List matches by tab
// @Tags matches
// @Description Returns the upcoming, live, history and Sunday tabs. A match may appear in more than one tab.
// @Produce json
// @Success 200 {object} map[string]interface{} "Tabs"
// @Failure 401 {object} map[string]string "Not signed in"
// @Failure 500 {object} map[string]string "Failed to load matches"
// @Security BearerAuth
// @Router /api/matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	section, _ := h.section(r)

	if err := section.Refresh(r.Context()); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tabs": section.Tabs()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Schedule a match
// @Tags matches
// @Description Adds an upcoming match. Accepts JSON or multipart form data with an optional opponent_logo file.
// @Accept json,mpfd
// @Produce json
// @Param body body forms.MatchDraft true "Match details"
// @Success 201 {object} map[string]interface{} "Match added"
// @Failure 400 {object} map[string]string "Malformed request"
// @Failure 403 {object} map[string]string "Captains only"
// @Failure 422 {object} map[string]string "Field errors"
// @Failure 503 {object} map[string]string "Uploads not configured"
// @Security BearerAuth
// @Router /api/matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	section, notices := h.section(r)
	form := section.AddMatchForm()
	if form == nil {
		forbiddenResponse(w, r, "only captains can add matches")
		return
	}

	draft := forms.DefaultMatchDraft()
	cleanup := func() {}
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		draft = matchDraftFromForm(r)
		logo, closeLogo, err := formFile(r, "opponent_logo")
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		cleanup = closeLogo
		form.AttachLogo(logo)
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
		"tabs":         section.Tabs(),
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScore godoc
// @Summary Update a match score
// @Tags matches
// @Description Overwrites the status, both innings and the result of one match. Completed matches are read-only.
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param body body forms.ScoreDraft true "Full score row"
// @Success 200 {object} map[string]interface{} "Score updated"
// @Failure 400 {object} map[string]string "Malformed request"
// @Failure 403 {object} map[string]string "Captains only"
// @Failure 404 {object} map[string]string "Match not found"
// @Failure 409 {object} map[string]string "Match already completed"
// @Failure 422 {object} map[string]string "Field errors"
// @Security BearerAuth
// @Router /api/matches/{matchID}/score [put]
func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var draft forms.ScoreDraft
	if err := readJSON(w, r, &draft); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	section, notices := h.section(r)
	if err := section.Refresh(r.Context()); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	card := section.Card(matchID)
	if card == nil {
		notFoundResponse(w, r)
		return
	}
	form := card.ScoreForm()
	if form == nil {
		session, _ := middleware.SessionFromContext(r.Context())
		if !session.Can(access.ActionUpdateScore) {
			forbiddenResponse(w, r, "only captains can update scores")
			return
		}
		conflictResponse(w, r, errMatchNotScorable.Error())
		return
	}

	form.Open()
	form.SetDraft(draft)
	if err := form.Submit(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"notification": notices.Last(),
		"tabs":         section.Tabs(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
