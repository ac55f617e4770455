// Package access decides which dashboard actions a signed-in member may perform.
package access

import "github.com/gncc/cricket-dashboard/models"

type Action string

const (
	ActionViewDashboard Action = "view_dashboard"
	ActionAddMatch      Action = "add_match"
	ActionUpdateScore   Action = "update_score"
	ActionAddPlayer     Action = "add_player"
	ActionDeletePlayer  Action = "delete_player"
)

// Session is the identity resolved from a valid session token.
type Session struct {
	UserID   string          `json:"user_id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
}

// Can reports whether role may perform action. Captains manage the roster and
// fixtures; players only view them. Unknown roles may do nothing.
func Can(action Action, role models.UserRole) bool {
	switch role {
	case models.RoleCaptain:
		switch action {
		case ActionViewDashboard, ActionAddMatch, ActionUpdateScore, ActionAddPlayer, ActionDeletePlayer:
			return true
		}
	case models.RolePlayer:
		return action == ActionViewDashboard
	}
	return false
}

func (s Session) Can(action Action) bool {
	return Can(action, s.Role)
}

func (s Session) IsCaptain() bool {
	return s.Role == models.RoleCaptain
}
