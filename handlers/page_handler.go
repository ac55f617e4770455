package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/cards"
	"github.com/gncc/cricket-dashboard/dashboard"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/middleware"
	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/services"
)

const (
	authTabSignIn = "signin"
	authTabSignUp = "signup"

	PlayerNotFoundMessage = "Player not found"
)

// PageHandler serves the server-rendered landing, auth and dashboard pages.
// Mutations follow post/redirect/get; the outcome travels in a flash cookie.
type PageHandler struct {
	templates     *template.Template
	auth          *AuthHandler
	matchService  services.MatchService
	playerService services.PlayerService
	feed          dashboard.ChangeFeed
	logger        *slog.Logger
}

func NewPageHandler(templates *template.Template, auth *AuthHandler, matchService services.MatchService, playerService services.PlayerService, feed dashboard.ChangeFeed, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		templates:     templates,
		auth:          auth,
		matchService:  matchService,
		playerService: playerService,
		feed:          feed,
		logger:        logger,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.DebugContext(r.Context(), "failed to write page", slog.Any("error", err))
	}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, target string, notice *Notice) {
	setFlash(w, notice)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseForm(r *http.Request) error {
	if isMultipart(r) {
		return r.ParseMultipartForm(maxMultipartBytes)
	}
	return r.ParseForm()
}

// Landing shows the public page; signed-in visitors go straight to the dashboard.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "landing.html", pageData{Title: "Home", Notice: popFlash(w, r)})
}

func (h *PageHandler) Auth(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	tab := r.URL.Query().Get("tab")
	if tab != authTabSignUp {
		tab = authTabSignIn
	}
	h.render(w, r, http.StatusOK, "auth.html", h.authPage(tab, popFlash(w, r)))
}

func (h *PageHandler) authPage(tab string, notice *Notice) authPage {
	return authPage{
		pageData:          pageData{Title: "Sign In", Notice: notice},
		Tab:               tab,
		SignUp:            services.RegisterInput{Role: models.RolePlayer},
		MinPasswordLength: services.MinPasswordLength,
	}
}

func (h *PageHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := services.RegisterInput{
		FullName:   r.PostFormValue("full_name"),
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		Role:       models.UserRole(r.PostFormValue("role")),
		RedirectTo: r.PostFormValue("redirect_to"),
	}

	if _, err := h.auth.authService.Register(r.Context(), input); err != nil {
		page := h.authPage(authTabSignUp, &Notice{Kind: NoticeError, Message: err.Error()})
		input.Password = ""
		page.SignUp = input
		h.render(w, r, authErrorStatus(err), "auth.html", page)
		return
	}

	redirectWithFlash(w, r, "/auth?tab="+authTabSignIn, &Notice{Kind: NoticeSuccess, Message: SignUpSuccessMessage})
}

func (h *PageHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := services.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	_, token, err := h.auth.authService.Login(r.Context(), input)
	if err != nil {
		page := h.authPage(authTabSignIn, &Notice{Kind: NoticeError, Message: err.Error()})
		page.SignIn = services.LoginInput{Email: input.Email}
		h.render(w, r, authErrorStatus(err), "auth.html", page)
		return
	}

	h.auth.setSessionCookie(w, token)
	redirectWithFlash(w, r, "/dashboard", &Notice{Kind: NoticeSuccess, Message: SignInSuccessMessage})
}

func (h *PageHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.auth.clearSessionCookie(w)
	redirectWithFlash(w, r, "/auth", &Notice{Kind: NoticeSuccess, Message: dashboard.SignedOutMessage})
}

func authErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrAuthInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAuthEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrFullNameRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// submitStatus is the status of a page re-rendered after a failed submit.
func submitStatus(err error) int {
	var validation forms.ValidationErrors
	switch {
	case errors.As(err, &validation), errors.Is(err, services.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, forms.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.Is(err, services.ErrMediaStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrMatchNotFound), errors.Is(err, services.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func fieldErrors(err error) map[string]string {
	var validation forms.ValidationErrors
	if errors.As(err, &validation) {
		return validation
	}
	return nil
}

// shell builds the dashboard for the signed-in viewer, or redirects to the auth page.
func (h *PageHandler) shell(w http.ResponseWriter, r *http.Request) (*dashboard.Shell, *noticeRecorder, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return nil, nil, false
	}

	notices := &noticeRecorder{}
	shell, err := dashboard.NewShell(session, h.matchService, h.playerService, h.feed, notices, h.logger)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return nil, nil, false
	}
	return shell, notices, true
}

func (h *PageHandler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, shell *dashboard.Shell, notices *noticeRecorder, state dashboardState, notice *Notice) {
	if err := shell.Load(r.Context()); err != nil && notice == nil {
		notice = notices.Last()
	}
	h.render(w, r, status, "dashboard.html", buildDashboardPage(shell, state, notice))
}

func dashboardURL(tab string) string {
	if tab == "" {
		return "/dashboard"
	}
	return "/dashboard?tab=" + url.QueryEscape(tab)
}

// Dashboard renders the role-specific dashboard. Query parameters select the tab and
// open the add dialogs, the score editor or the removal prompt.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	shell, notices, ok := h.shell(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	state := dashboardState{
		tab:           q.Get("tab"),
		scoreFor:      q.Get("score"),
		confirmDelete: q.Get("confirm_delete"),
	}
	if shell.Matches.AddMatchForm() != nil && q.Get("add") == "match" {
		state.addMatch = &matchDialog{Open: true, Draft: forms.DefaultMatchDraft()}
	}
	if shell.Players.AddPlayerForm() != nil && q.Get("add") == "player" {
		state.addPlayer = &playerDialog{Open: true, Draft: forms.DefaultPlayerDraft()}
	}

	h.renderDashboard(w, r, http.StatusOK, shell, notices, state, popFlash(w, r))
}

func (h *PageHandler) AddMatch(w http.ResponseWriter, r *http.Request) {
	shell, notices, ok := h.shell(w, r)
	if !ok {
		return
	}
	form := shell.Matches.AddMatchForm()
	if form == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	if err := parseForm(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logo, closeLogo, err := formFile(r, "opponent_logo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer closeLogo()

	draft := matchDraftFromForm(r)
	form.Open()
	form.SetDraft(draft)
	form.AttachLogo(logo)
	if err := form.Submit(r.Context()); err != nil {
		state := dashboardState{
			tab:      r.FormValue("tab"),
			addMatch: &matchDialog{Open: true, Draft: draft, Errors: fieldErrors(err)},
		}
		h.renderDashboard(w, r, submitStatus(err), shell, notices, state, notices.Last())
		return
	}

	redirectWithFlash(w, r, dashboardURL(r.FormValue("tab")), notices.Last())
}

func (h *PageHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	shell, notices, ok := h.shell(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tab := r.PostFormValue("tab")

	if err := shell.Matches.Refresh(r.Context()); err != nil {
		redirectWithFlash(w, r, dashboardURL(tab), notices.Last())
		return
	}
	card := shell.Matches.Card(matchID)
	if card == nil {
		http.NotFound(w, r)
		return
	}
	form := card.ScoreForm()
	if form == nil {
		if !shell.Session.Can(access.ActionUpdateScore) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		redirectWithFlash(w, r, dashboardURL(tab), &Notice{Kind: NoticeError, Message: errMatchNotScorable.Error()})
		return
	}

	draft := scoreDraftFromForm(r)
	form.Open()
	form.SetDraft(draft)
	if err := form.Submit(r.Context()); err != nil {
		state := dashboardState{
			tab:      tab,
			scoreFor: matchID,
			score:    &scoreDialog{Draft: draft, Errors: fieldErrors(err)},
		}
		h.renderDashboard(w, r, submitStatus(err), shell, notices, state, notices.Last())
		return
	}

	redirectWithFlash(w, r, dashboardURL(tab), notices.Last())
}

func (h *PageHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	shell, notices, ok := h.shell(w, r)
	if !ok {
		return
	}
	form := shell.Players.AddPlayerForm()
	if form == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	if err := parseForm(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	avatar, closeAvatar, err := formFile(r, "avatar")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAvatar()

	draft := playerDraftFromForm(r)
	form.Open()
	form.SetDraft(draft)
	form.AttachAvatar(avatar)
	if err := form.Submit(r.Context()); err != nil {
		state := dashboardState{
			tab:       r.FormValue("tab"),
			addPlayer: &playerDialog{Open: true, Draft: draft, Errors: fieldErrors(err)},
		}
		h.renderDashboard(w, r, submitStatus(err), shell, notices, state, notices.Last())
		return
	}

	redirectWithFlash(w, r, dashboardURL(r.FormValue("tab")), notices.Last())
}

// DeletePlayer removes a player only when the form carries confirm=yes. Otherwise the
// viewer is sent back to the dashboard with the removal prompt open.
func (h *PageHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	shell, notices, ok := h.shell(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tab := r.PostFormValue("tab")

	if err := shell.Players.Load(r.Context()); err != nil {
		redirectWithFlash(w, r, dashboardURL(tab), notices.Last())
		return
	}
	card := shell.Players.Card(playerID)
	if card == nil {
		redirectWithFlash(w, r, dashboardURL(tab), &Notice{Kind: NoticeError, Message: PlayerNotFoundMessage})
		return
	}

	confirmed := r.PostFormValue("confirm") == "yes"
	attempted, err := card.Delete(r.Context(), cards.ConfirmFunc(func(string) bool { return confirmed }))
	switch {
	case errors.Is(err, cards.ErrDeleteNotAllowed):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	case err == nil && !attempted:
		q := url.Values{"confirm_delete": {playerID}}
		if tab != "" {
			q.Set("tab", tab)
		}
		http.Redirect(w, r, "/dashboard?"+q.Encode(), http.StatusSeeOther)
		return
	}

	redirectWithFlash(w, r, dashboardURL(tab), notices.Last())
}
