// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	stderrors "cookmate-backend/internal/common/errors"
	sendnotification "cookmate-backend/internal/workers/communication/send-notification"
	generatesuggestions "cookmate-backend/internal/workers/meal/generate-suggestions"
	savepreferences "cookmate-backend/internal/workers/meal/save-preferences"
	validatepreferences "cookmate-backend/internal/workers/meal/validate-preferences"
	archivesuggestion "cookmate-backend/internal/workers/search/archive-suggestion"
)

const (
	purposeTelegramLink      = "telegram_link"
	purposeEmailVerification = "email_verification"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "This is the backend of CookMate App")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Meal suggestion service is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Account routes ---

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		s.writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := s.accounts.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		s.writeStandardError(w, err)
		return
	}

	if err := s.startSession(w, r.Context(), user.ID, user.Email); err != nil {
		s.writeStandardError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"id":      user.ID,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Email == "" || body.Password == "" {
		s.writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := s.accounts.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := s.startSession(w, r.Context(), user.ID, user.Email); err != nil {
		s.writeStandardError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User Logged In successfully",
		"id":      user.ID,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.config.Auth.CookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("session destroy failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Logged out"})
}

func (s *Server) startSession(w http.ResponseWriter, ctx context.Context, userID, email string) error {
	token, err := s.sessions.Create(ctx, userID, email)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   s.config.Auth.SessionTTL,
		HttpOnly: true,
		Secure:   s.config.Auth.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// --- Preference intake ---

func (s *Server) handleSubmitPreferences(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	// The profile is keyed by the session user, never by a client-supplied ID.
	payload["userId"] = session.UserID

	validated, err := s.validator.Execute(r.Context(), &validatepreferences.Input{Payload: payload})
	if err != nil {
		s.writeStandardError(w, err)
		return
	}
	if !validated.Valid {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"code":    "VALIDATION_ERROR",
			"errors":  validated.Errors,
		})
		return
	}

	if _, err := s.prefs.Execute(r.Context(), &savepreferences.Input{Preferences: validated.Preferences}); err != nil {
		s.writeStandardError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User Preferences Registered",
	})
}

// --- Suggestion generation ---

func (s *Server) handleGenerateSuggestions(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	prefs, err := s.prefs.GetByUserID(r.Context(), session.UserID)
	if err != nil {
		s.writeStandardError(w, err)
		return
	}

	output, err := s.generator.Execute(r.Context(), &generatesuggestions.Input{Preferences: *prefs})
	if err != nil {
		stdErr := stderrors.Normalize(err)
		s.writeJSON(w, stderrors.HTTPStatus(stdErr.Code), map[string]interface{}{
			"success": false,
			"error":   stdErr.Message,
			"code":    "GENERATION_ERROR",
		})
		return
	}

	// Archiving and notifications run after the response; neither can fail
	// the generation.
	go s.postGeneration(prefs.UserID, prefs.Name, prefs.CookName, prefs.CookWhatsApp, output)

	s.hub.Broadcast(EventSuggestionsReady, map[string]interface{}{
		"userId": prefs.UserID,
	})

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"data":      output.Plans,
		"userInfo":  output.UserInfo,
		"message":   "Meal suggestions generated successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) postGeneration(userID, name, cookName, cookPhone string, output *generatesuggestions.Output) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mealTypes := make([]string, 0, len(output.Plans))
	for mealType := range output.Plans {
		mealTypes = append(mealTypes, mealType)
	}

	if s.archiver != nil {
		if _, err := s.archiver.Execute(ctx, &archivesuggestion.Input{UserID: userID, Plans: output.Plans}); err != nil {
			s.logger.Warn("suggestion archiving failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}

	if s.notifier != nil && cookPhone != "" {
		if _, err := s.notifier.Execute(ctx, &sendnotification.Input{
			NotificationType: sendnotification.NotificationTypeCookDigest,
			Phone:            cookPhone,
			Name:             name,
			CookName:         cookName,
			MealTypes:        mealTypes,
		}); err != nil {
			s.logger.Warn("cook notification failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}
}

func (s *Server) handleSuggestionHistory(w http.ResponseWriter, r *http.Request) {
	if s.archiver == nil {
		s.writeError(w, http.StatusNotImplemented, "suggestion history is not enabled")
		return
	}

	session := sessionFromContext(r.Context())
	result, err := s.archiver.Search(r.Context(), &archivesuggestion.SearchInput{
		UserID:   session.UserID,
		MealType: r.URL.Query().Get("mealType"),
	})
	if err != nil {
		s.writeStandardError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": result.Suggestions,
		"totalHits":   result.TotalHits,
	})
}

// --- Verification ---

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email  string `json:"email"`
		UserID string `json:"userId"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		s.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := s.tokens.Issue(body.UserID, purposeEmailVerification)
	if err != nil {
		s.writeStandardError(w, err)
		return
	}

	link := fmt.Sprintf("%s/generate/validate-user?token=%s", s.config.Server.BaseURL, token)
	if _, err := s.notifier.Execute(r.Context(), &sendnotification.Input{
		NotificationType: sendnotification.NotificationTypeVerification,
		Email:            body.Email,
		Name:             body.Name,
		VerificationLink: link,
	}); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Failed to send email",
			"error":   stderrors.Normalize(err).Message,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email sent successfully",
	})
}

func (s *Server) handleValidateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		s.writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	claims, err := s.tokens.Verify(body.Token, purposeTelegramLink)
	if err != nil {
		if claims2, err2 := s.tokens.Verify(body.Token, purposeEmailVerification); err2 == nil {
			claims = claims2
		} else {
			s.writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
	}

	if err := s.accounts.MarkEmailVerified(r.Context(), claims.UserID); err != nil {
		s.writeStandardError(w, err)
		return
	}

	s.hub.Broadcast(EventTelegramVerified, map[string]interface{}{
		"userId": claims.UserID,
	})

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User verified",
		"userId":  claims.UserID,
	})
}

// --- Response helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{"message": message})
}

func (s *Server) writeStandardError(w http.ResponseWriter, err error) {
	stdErr := stderrors.Normalize(err)
	s.writeJSON(w, stderrors.HTTPStatus(stdErr.Code), map[string]interface{}{
		"message": stdErr.Message,
		"code":    stdErr.Code,
	})
}
