package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"ai-rewriter/internal/history"
	"ai-rewriter/internal/rewrite"
	"ai-rewriter/internal/stats"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, loginTmpl, loginData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	token, ok := s.authSvc.Login(r.PostFormValue("username"), r.PostFormValue("password"))
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		renderPage(w, loginTmpl, loginData{Error: "Invalid username or password"})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := s.sessionToken(r); token != "" {
		s.authSvc.Logout(token)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	renderPage(w, homeTmpl, homeData{Language: s.language})
}

func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	input := r.PostFormValue("text")
	data := homeData{Language: s.language, Input: input}

	result, err := s.rewriter.Rewrite(r.Context(), input)
	switch {
	case errors.Is(err, rewrite.ErrEmptyInput):
		data.Error = "Please enter some text to rewrite."
	case err != nil:
		log.Printf("rewrite failed: %v", err)
		data.Error = "Something went wrong. Please try again."
	default:
		data.Result = result
	}
	renderPage(w, homeTmpl, data)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.store.List()
	// Most recent first for display
	reversed := make([]history.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	renderPage(w, historyTmpl, historyData{Entries: reversed})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(); err != nil {
		log.Printf("failed to clear history: %v", err)
	}
	if err := s.agg.Reset(); err != nil {
		log.Printf("failed to reset stats: %v", err)
	}
	http.Redirect(w, r, "/history", http.StatusFound)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	renderPage(w, statsTmpl, statsData{
		Usage:  s.agg.Snapshot(),
		Series: s.agg.DailySeries(7),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

type rewriteRequest struct {
	Text string `json:"text"`
}

type rewriteResponse struct {
	Original  string `json:"original"`
	Rewritten string `json:"rewritten"`
}

func (s *Server) handleAPIRewrite(w http.ResponseWriter, r *http.Request) {
	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	result, err := s.rewriter.Rewrite(r.Context(), req.Text)
	switch {
	case errors.Is(err, rewrite.ErrEmptyInput):
		writeJSONError(w, http.StatusBadRequest, "text is required")
	case err != nil:
		log.Printf("rewrite failed: %v", err)
		writeJSONError(w, http.StatusBadGateway, "rewrite failed, please retry")
	default:
		writeJSON(w, http.StatusOK, rewriteResponse{Original: req.Text, Rewritten: result})
	}
}

func (s *Server) handleAPIHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.agg.Snapshot())
}

func (s *Server) handleAPIDaily(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			writeJSONError(w, http.StatusBadRequest, "days must be an integer between 1 and 365")
			return
		}
		days = n
	}
	writeJSON(w, http.StatusOK, s.agg.DailySeries(days))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statsData struct {
	Usage  stats.Usage
	Series []stats.DayCount
}

type historyData struct {
	Entries []history.Entry
}

type homeData struct {
	Language string
	Input    string
	Result   string
	Error    string
}

type loginData struct {
	Error string
}
