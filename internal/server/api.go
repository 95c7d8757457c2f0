package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/syms-residuos/backoffice/internal/actions"
	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
	"github.com/syms-residuos/backoffice/pkg/tableform"
	"github.com/syms-residuos/backoffice/pkg/validation"
)

const maxBodyBytes = 1 << 20

type apiError struct {
	Error       string            `json:"error"`
	FieldErrors validation.Errors `json:"fieldErrors,omitempty"`
}

func (s *Server) registerAPI(r *mux.Router, e entity) {
	api := r.PathPrefix(e.apiPath).Subrouter()
	api.HandleFunc("", s.apiList(e)).Methods(http.MethodGet)
	api.HandleFunc("", s.apiSubmit(e, false)).Methods(http.MethodPost)
	api.HandleFunc("/{id}", s.apiGet(e)).Methods(http.MethodGet)
	api.HandleFunc("/{id}", s.apiSubmit(e, true)).Methods(http.MethodPut)
	api.HandleFunc("/{id}", s.apiDelete(e)).Methods(http.MethodDelete)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func isAPI(r *http.Request) bool {
	return r.URL.Path == APIPrefix || strings.HasPrefix(r.URL.Path, APIPrefix+"/")
}

// apiList returns the expanded rows, or null when there are none.
func (s *Server) apiList(e entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := e.list(r.Context())
		if err != nil {
			s.logger.Error("api list failed", logging.String("form", e.formID), logging.Error(err))
			writeJSON(w, http.StatusInternalServerError, apiError{Error: store.MessageUnknown})
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (s *Server) apiGet(e entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, _, err := e.fetch(r.Context(), mux.Vars(r)["id"])
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, row)
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, apiError{Error: store.MessageNotFound})
		default:
			s.logger.Error("api fetch failed", logging.String("form", e.formID), logging.Error(err))
			writeJSON(w, http.StatusInternalServerError, apiError{Error: store.MessageUnknown})
		}
	}
}

// apiSubmit validates the JSON body with the entity form and runs the
// create or update action. Store failures are reported in the 200 body; an
// action that panics answers 500 with the generic failure message.
func (s *Server) apiSubmit(e entity, editing bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var values model.Values
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&values); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: actions.MessageInvalidInput})
			return
		}

		id := mux.Vars(r)["id"]
		var res actions.ActionResult
		form, err := s.forms.Form(r.Context(), orchestrator.Request{
			FormID: e.formID,
			Submit: func(ctx context.Context, values model.Values) (bool, error) {
				if editing {
					res = e.update(ctx, id, values)
				} else {
					res = e.create(ctx, values)
				}
				return outcome(res)
			},
			Options: []tableform.Option{tableform.WithMessages(forms.Messages(e.formID, editing))},
		})
		if err != nil {
			s.logger.Error("api form unavailable", logging.String("form", e.formID), logging.Error(err))
			writeJSON(w, http.StatusInternalServerError, apiError{Error: store.MessageUnknown})
			return
		}

		result := form.Submit(r.Context(), values)
		switch {
		case result.Status == tableform.StatusInvalid:
			writeJSON(w, http.StatusBadRequest, apiError{Error: actions.MessageInvalidInput, FieldErrors: result.FieldErrors})
		case result.Status == tableform.StatusFailed && res.OK():
			// The action never produced a result: it panicked or failed
			// outside the store.
			message := result.Notification.Message
			writeJSON(w, http.StatusInternalServerError, actions.ActionResult{Error: &message})
		default:
			writeJSON(w, http.StatusOK, res)
		}
	}
}

func (s *Server) apiDelete(e entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, e.remove(r.Context(), mux.Vars(r)["id"]))
	}
}
