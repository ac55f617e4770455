package handlers

import (
	"github.com/gncc/cricket-dashboard/cards"
	"github.com/gncc/cricket-dashboard/dashboard"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/services"
)

type pageData struct {
	Title  string
	Notice *Notice
}

type authPage struct {
	pageData
	Tab               string
	SignIn            services.LoginInput
	SignUp            services.RegisterInput
	MinPasswordLength int
}

type dashboardPage struct {
	pageData
	Heading   string
	Greeting  string
	IsCaptain bool
	Tabs      []tabView
	ActiveTab string

	Players       []playerCardView
	PlayersEmpty  string
	ConfirmDelete *playerCardView

	AddMatch  *matchDialog
	AddPlayer *playerDialog
}

type tabView struct {
	dashboard.Tab
	Active bool
	Items  []matchCardView
}

type matchCardView struct {
	*cards.MatchCard
	Tab   string
	Score *scoreDialog
}

type playerCardView struct {
	Card *cards.PlayerCard
	Tab  string
}

type matchDialog struct {
	Open    bool
	Draft   forms.MatchDraft
	Errors  map[string]string
	Tab     string
	Options formOptions
}

type playerDialog struct {
	Open    bool
	Draft   forms.PlayerDraft
	Errors  map[string]string
	Tab     string
	Options formOptions
}

type scoreDialog struct {
	Draft    forms.ScoreDraft
	Errors   map[string]string
	Statuses []string
}

type formOptions struct {
	MatchTypes    []string
	Statuses      []string
	PlayerRoles   []string
	BattingStyles []string
	BowlingStyles []string
}

func defaultFormOptions() formOptions {
	return formOptions{
		MatchTypes:    stringsOf(models.MatchTypes),
		Statuses:      stringsOf(models.MatchStatuses),
		PlayerRoles:   stringsOf(models.PlayerRoles),
		BattingStyles: stringsOf(models.BattingStyles),
		BowlingStyles: stringsOf(models.BowlingStyles),
	}
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// dashboardState is what the request asks the page to show besides the lists.
type dashboardState struct {
	tab           string
	scoreFor      string
	score         *scoreDialog
	confirmDelete string
	addMatch      *matchDialog
	addPlayer     *playerDialog
}

func buildDashboardPage(shell *dashboard.Shell, state dashboardState, notice *Notice) dashboardPage {
	page := dashboardPage{
		pageData:     pageData{Title: shell.Title(), Notice: notice},
		Heading:      shell.Title(),
		Greeting:     shell.Greeting(),
		IsCaptain:    shell.Session.IsCaptain(),
		ActiveTab:    state.tab,
		PlayersEmpty: shell.Players.EmptyText(),
	}

	if page.ActiveTab == "" {
		page.ActiveTab = dashboard.TabUpcoming
	}
	options := defaultFormOptions()

	for _, tab := range shell.Matches.Tabs() {
		view := tabView{Tab: tab, Active: tab.Key == page.ActiveTab}
		for _, card := range tab.Cards {
			item := matchCardView{MatchCard: card, Tab: tab.Key}
			if view.Active && card.ID() == state.scoreFor && card.ScoreForm() != nil {
				item.Score = state.score
				if item.Score == nil {
					item.Score = &scoreDialog{Draft: card.ScoreForm().Draft()}
				}
				item.Score.Statuses = options.Statuses
			}
			view.Items = append(view.Items, item)
		}
		page.Tabs = append(page.Tabs, view)
	}

	for _, card := range shell.Players.Cards() {
		page.Players = append(page.Players, playerCardView{Card: card, Tab: page.ActiveTab})
	}
	if state.confirmDelete != "" {
		if card := shell.Players.Card(state.confirmDelete); card != nil && card.CanDelete() {
			page.ConfirmDelete = &playerCardView{Card: card, Tab: page.ActiveTab}
		}
	}

	if form := shell.Matches.AddMatchForm(); form != nil {
		page.AddMatch = state.addMatch
		if page.AddMatch == nil {
			page.AddMatch = &matchDialog{Draft: form.Draft()}
		}
		page.AddMatch.Tab = page.ActiveTab
		page.AddMatch.Options = options
	}
	if form := shell.Players.AddPlayerForm(); form != nil {
		page.AddPlayer = state.addPlayer
		if page.AddPlayer == nil {
			page.AddPlayer = &playerDialog{Draft: form.Draft()}
		}
		page.AddPlayer.Tab = page.ActiveTab
		page.AddPlayer.Options = options
	}

	return page
}
