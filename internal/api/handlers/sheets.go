package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
	"travel-time-service/internal/api/dto"
	"travel-time-service/internal/domain"
	"travel-time-service/internal/platform/obs"
	"travel-time-service/internal/ports"
	"travel-time-service/internal/services"
	"travel-time-service/internal/session"

	"github.com/google/uuid"
)

var errSheetsNotConfigured = fmt.Errorf("spreadsheet export not configured: %w", domain.ErrUpstreamUnavailable)

// SheetsHandler runs the OAuth flow and exports calculations to a spreadsheet.
// Auth and Exporter are nil when no OAuth client is configured.
type SheetsHandler struct {
	Auth     ports.Authenticator
	Exporter ports.SpreadsheetExporter
	Sessions *session.Store
	Now      func() time.Time
}

func (h *SheetsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *SheetsHandler) configured() bool {
	return h.Auth != nil && h.Exporter != nil
}

// AuthGoogle starts the OAuth flow and returns the consent URL.
func (h *SheetsHandler) AuthGoogle(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeDomainError(w, r, "auth google", errSheetsNotConfigured)
		return
	}

	id := h.Sessions.ID(w, r)
	state := uuid.NewString()
	h.Sessions.Update(id, func(s *session.Session) { s.State = state })

	writeJSON(w, r, http.StatusOK, dto.AuthURLResponse{
		Success:          true,
		AuthorizationURL: h.Auth.AuthCodeURL(state),
	})
}

// OAuthCallback completes the flow and redirects back to the app.
func (h *SheetsHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeDomainError(w, r, "oauth callback", errSheetsNotConfigured)
		return
	}

	q := r.URL.Query()
	id := h.Sessions.ID(w, r)
	sess, _ := h.Sessions.Get(id)

	if sess.State == "" || q.Get("state") != sess.State {
		writeError(w, r, http.StatusBadRequest, "invalid oauth state")
		return
	}

	if msg := q.Get("error"); msg != "" {
		redirectAuthError(w, r, msg)
		return
	}

	cred, err := h.Auth.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Printf("req_id=%s oauth exchange failed: %v", obs.RequestID(r.Context()), err)
		redirectAuthError(w, r, "token exchange failed")
		return
	}

	// A fresh id after login keeps a pre-login cookie from reaching the credential.
	id = h.Sessions.Rotate(w, id)
	h.Sessions.Update(id, func(s *session.Session) {
		s.State = ""
		s.Credential = &cred
	})

	http.Redirect(w, r, "/?auth=success", http.StatusFound)
}

func redirectAuthError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?auth=error&message="+url.QueryEscape(msg), http.StatusFound)
}

// CheckAuth reports whether the session holds a usable credential,
// refreshing it when expired.
func (h *SheetsHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeJSON(w, r, http.StatusOK, dto.CheckAuthResponse{Authenticated: false})
		return
	}

	id := h.Sessions.ID(w, r)
	_, err := h.credential(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
		log.Printf("req_id=%s check auth failed: %v", obs.RequestID(r.Context()), err)
	}

	writeJSON(w, r, http.StatusOK, dto.CheckAuthResponse{Authenticated: err == nil})
}

// credential returns the session's credential, refreshed if needed.
// A refreshed credential is stored back into the session.
func (h *SheetsHandler) credential(ctx context.Context, sessionID string) (ports.Credential, error) {
	sess, ok := h.Sessions.Get(sessionID)
	if !ok || sess.Credential == nil {
		return ports.Credential{}, fmt.Errorf("no credential in session: %w", domain.ErrUnauthenticated)
	}

	cred, refreshed, err := h.Auth.RefreshCredential(ctx, *sess.Credential)
	if err != nil {
		return ports.Credential{}, err
	}

	if refreshed {
		h.Sessions.Update(sessionID, func(s *session.Session) { s.Credential = &cred })
	}
	return cred, nil
}

// CreateSpreadsheet creates a new export spreadsheet for the session.
func (h *SheetsHandler) CreateSpreadsheet(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeDomainError(w, r, "create spreadsheet", errSheetsNotConfigured)
		return
	}

	id := h.Sessions.ID(w, r)
	cred, err := h.credential(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "create spreadsheet", err)
		return
	}

	sheetID, err := h.Exporter.CreateSpreadsheet(r.Context(), cred)
	if err != nil {
		writeDomainError(w, r, "create spreadsheet", err)
		return
	}
	h.Sessions.Update(id, func(s *session.Session) { s.SpreadsheetID = sheetID })

	writeJSON(w, r, http.StatusOK, dto.SpreadsheetResponse{
		Success:        true,
		SpreadsheetID:  sheetID,
		SpreadsheetURL: h.Exporter.URL(sheetID),
	})
}

// SaveToSheets appends one calculation row, creating the spreadsheet on first use.
func (h *SheetsHandler) SaveToSheets(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeDomainError(w, r, "save to sheets", errSheetsNotConfigured)
		return
	}

	var req dto.SaveToSheetsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "save to sheets", err)
		return
	}

	times, err := toTravelTimeSet(req.TravelTimes)
	if err != nil {
		writeDomainError(w, r, "save to sheets", err)
		return
	}
	report, err := services.ComputeTimeLoss(times)
	if err != nil {
		writeDomainError(w, r, "save to sheets", err)
		return
	}

	id := h.Sessions.ID(w, r)
	cred, err := h.credential(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "save to sheets", err)
		return
	}

	sess, _ := h.Sessions.Get(id)
	sheetID := sess.SpreadsheetID
	if sheetID == "" {
		sheetID, err = h.Exporter.CreateSpreadsheet(r.Context(), cred)
		if err != nil {
			writeDomainError(w, r, "save to sheets", err)
			return
		}
		h.Sessions.Update(id, func(s *session.Session) { s.SpreadsheetID = sheetID })
	}

	row := services.BuildSheetRow(h.now(), toLocations(req.Locations), times, report)
	cells, err := h.Exporter.AppendRow(r.Context(), cred, sheetID, row)
	if err != nil {
		writeDomainError(w, r, "save to sheets", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SaveToSheetsResponse{
		Success:        true,
		SpreadsheetURL: h.Exporter.URL(sheetID),
		UpdatedCells:   cells,
	})
}

func (h *SheetsHandler) GetSpreadsheetURL(w http.ResponseWriter, r *http.Request) {
	if !h.configured() {
		writeDomainError(w, r, "get spreadsheet url", errSheetsNotConfigured)
		return
	}

	sess, _ := h.Sessions.Get(h.Sessions.ID(w, r))
	if sess.SpreadsheetID == "" {
		writeDomainError(w, r, "get spreadsheet url",
			fmt.Errorf("no spreadsheet for session: %w", domain.ErrNotFound))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SpreadsheetResponse{
		Success:        true,
		SpreadsheetID:  sess.SpreadsheetID,
		SpreadsheetURL: h.Exporter.URL(sess.SpreadsheetID),
	})
}

// Logout drops the session and its credential.
func (h *SheetsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(session.CookieName); err == nil {
		h.Sessions.Delete(c.Value)
	}
	session.Clear(w)

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "logged out",
	})
}
