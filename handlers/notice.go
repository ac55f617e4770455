package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
)

const flashCookieName = "gncc_flash"

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is one toast shown to the viewer.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// noticeRecorder collects the notices raised while serving one request.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *noticeRecorder) Success(message string) {
	n.add(Notice{Kind: NoticeSuccess, Message: message})
}

func (n *noticeRecorder) Error(message string) {
	n.add(Notice{Kind: NoticeError, Message: message})
}

func (n *noticeRecorder) add(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

// Last returns the most recent notice, or nil when nothing was raised.
func (n *noticeRecorder) Last() *Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return nil
	}
	last := n.notices[len(n.notices)-1]
	return &last
}

// setFlash stores notice for the page rendered after the next redirect.
func setFlash(w http.ResponseWriter, notice *Notice) {
	if notice == nil {
		return
	}
	data, err := json.Marshal(notice)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash notice.
func popFlash(w http.ResponseWriter, r *http.Request) *Notice {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var notice Notice
	if err := json.Unmarshal(data, &notice); err != nil || notice.Message == "" {
		return nil
	}
	return &notice
}
