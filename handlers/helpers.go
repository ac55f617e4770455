package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gncc/cricket-dashboard/cards"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/services"
	"github.com/gncc/cricket-dashboard/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxJSONBytes      = 1_048_576
	maxMultipartBytes = 10 << 20
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxJSONBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP turns service, form and card errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var validation forms.ValidationErrors

	switch {
	case errors.As(err, &validation):
		failedValidationResponse(w, r, validation)

	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, services.ErrAuthEmailTaken):
		conflictResponse(w, r, err.Error())
	case errors.Is(err, forms.ErrSubmitInProgress),
		errors.Is(err, cards.ErrDeleteInProgress):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrFullNameRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrConfirmationTokenInvalid):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrAuthInvalidCredentials),
		errors.Is(err, services.ErrAuthenticationFailed):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrForbiddenOperation),
		errors.Is(err, cards.ErrDeleteNotAllowed):
		forbiddenResponse(w, r, err.Error())

	case errors.Is(err, services.ErrMediaStorageDisabled):
		errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}

// getIDFromURL reads a UUID path parameter.
func getIDFromURL(r *http.Request, paramName string) (string, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return "", fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}

	return id.String(), nil
}

// formFile returns the uploaded file under field, or nil when none was sent.
// The caller must invoke the returned cleanup once the file has been consumed.
func formFile(r *http.Request, field string) (*storage.File, func(), error) {
	noop := func() {}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	if header.Size == 0 {
		file.Close()
		return nil, noop, nil
	}

	return &storage.File{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, func() { file.Close() }, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func checkbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func matchDraftFromForm(r *http.Request) forms.MatchDraft {
	return forms.MatchDraft{
		MatchDate:     r.FormValue("match_date"),
		MatchTime:     r.FormValue("match_time"),
		OpponentTeam:  r.FormValue("opponent_team"),
		Venue:         r.FormValue("venue"),
		MatchType:     r.FormValue("match_type"),
		IsSundayMatch: checkbox(r.FormValue("is_sunday_match")),
	}
}

func playerDraftFromForm(r *http.Request) forms.PlayerDraft {
	return forms.PlayerDraft{
		Name:         r.FormValue("name"),
		Role:         r.FormValue("role"),
		JerseyNumber: r.FormValue("jersey_number"),
		BattingStyle: r.FormValue("batting_style"),
		BowlingStyle: r.FormValue("bowling_style"),
	}
}

func scoreDraftFromForm(r *http.Request) forms.ScoreDraft {
	return forms.ScoreDraft{
		Status:          r.FormValue("status"),
		GNCCScore:       r.FormValue("gncc_score"),
		GNCCWickets:     r.FormValue("gncc_wickets"),
		GNCCOvers:       r.FormValue("gncc_overs"),
		OpponentScore:   r.FormValue("opponent_score"),
		OpponentWickets: r.FormValue("opponent_wickets"),
		OpponentOvers:   r.FormValue("opponent_overs"),
		Result:          r.FormValue("result"),
	}
}
