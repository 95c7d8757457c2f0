package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/syms-residuos/backoffice/internal/actions"
	"github.com/syms-residuos/backoffice/internal/flash"
	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
	"github.com/syms-residuos/backoffice/pkg/tableform"
)

const (
	messageNotFound  = "El registro solicitado no existe."
	messageFormError = "No fue posible cargar el formulario, si el error persiste contacte a soporte."
	messageListError = "No fue posible cargar el listado."
)

type page struct {
	Title   string
	Path    string
	Content string
	Toast   *flash.Toast
}

func (s *Server) registerPages(r *mux.Router, e entity) {
	r.HandleFunc(e.path, s.listPage(e)).Methods(http.MethodGet)
	r.HandleFunc(e.path+"/nuevo", s.createPage(e)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc(e.path+"/editar/{id}", s.editPage(e)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc(e.path+"/eliminar/{id}", s.deletePage(e)).Methods(http.MethodPost)
}

// render writes the layout around p. Without an explicit toast the pending
// flash toast, if any, is shown and cleared; otherwise it stays pending.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	toast := p.Toast
	if toast == nil {
		toast = flash.Pop(w, r)
	}
	html, err := s.pages.RenderTemplate("layout", map[string]any{
		"title":   p.Title,
		"nav":     Navigation(p.Path),
		"toast":   toast,
		"content": p.Content,
	})
	if err != nil {
		s.logger.Error("render layout failed", logging.String("path", p.Path), logging.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, title, message, back string) {
	content, err := s.pages.RenderTemplate("error", map[string]any{"message": message, "back": back})
	if err != nil {
		s.logger.Error("render error page failed", logging.Error(err))
		http.Error(w, message, status)
		return
	}
	s.render(w, r, status, page{Title: title, Path: r.URL.Path, Content: content})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if isAPI(r) {
		writeJSON(w, http.StatusNotFound, apiError{Error: store.MessageNotFound})
		return
	}
	s.renderError(w, r, http.StatusNotFound, "No encontrado", messageNotFound, "/dashboard")
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	links := make([]NavItem, 0, len(s.entities))
	for _, e := range s.entities {
		links = append(links, NavItem{Label: e.title, Href: e.path})
	}
	content, err := s.pages.RenderTemplate("dashboard", map[string]any{"links": links})
	if err != nil {
		s.logger.Error("render dashboard failed", logging.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, page{Title: "Home", Path: "/dashboard", Content: content})
}

// listPage serves the listing from the page cache; writes revalidate it.
func (s *Server) listPage(e entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := s.cache.Page(r.Context(), e.path, func(ctx context.Context) ([]byte, error) {
			rows, err := e.list(ctx)
			if err != nil {
				return nil, err
			}
			out, err := s.pages.RenderTemplate(e.template, map[string]any{
				"path": e.path,
				"rows": rows,
			})
			return []byte(out), err
		})
		if err != nil {
			s.logger.Error("render listing failed", logging.String("path", e.path), logging.Error(err))
			s.renderError(w, r, http.StatusInternalServerError, e.title, messageListError, "/dashboard")
			return
		}
		s.render(w, r, http.StatusOK, page{Title: e.title, Path: e.path, Content: string(content)})
	}
}

func (s *Server) createPage(e entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := e.path + "/nuevo"
		form, err := s.forms.Form(r.Context(), orchestrator.Request{
			FormID: e.formID,
			Submit: func(ctx context.Context, values model.Values) (bool, error) {
				return outcome(e.create(ctx, values))
			},
			Options: pageFormOptions(e, action, false),
		})
		if err != nil {
			s.formUnavailable(w, r, e, err)
			return
		}
		s.handleForm(w, r, e, e.createText, form)
	}
}

func (s *Server) editPage(e entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		_, record, err := e.fetch(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.renderError(w, r, http.StatusNotFound, e.editText, messageNotFound, e.path)
				return
			}
			s.formUnavailable(w, r, e, err)
			return
		}

		form, err := s.forms.Edit(r.Context(), orchestrator.Request{
			FormID:   e.formID,
			Record:   record,
			Adapters: forms.Adapters(),
			Submit: func(ctx context.Context, values model.Values) (bool, error) {
				return outcome(e.update(ctx, id, values))
			},
			Options: pageFormOptions(e, e.path+"/editar/"+id, true),
		})
		if err != nil {
			s.formUnavailable(w, r, e, err)
			return
		}
		s.handleForm(w, r, e, e.editText, form.Form)
	}
}

// handleForm renders form on GET. On POST it submits the posted values and
// redirects to the listing on success or redisplays the form otherwise.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request, e entity, title string, form *tableform.Form) {
	if r.Method != http.MethodPost {
		s.renderForm(w, r, http.StatusOK, e, title, form, tableform.State{}, nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderForm(w, r, http.StatusBadRequest, e, title, form, tableform.State{}, flash.Error(actions.MessageInvalidInput))
		return
	}

	result := form.Submit(r.Context(), tableform.ValuesFromForm(form.Spec(), r.PostForm))
	if result.OK() {
		flash.Set(w, flash.FromNotification(result.Notification))
		http.Redirect(w, r, e.path, http.StatusSeeOther)
		return
	}
	s.renderForm(w, r, http.StatusUnprocessableEntity, e, title, form, result.State(), flash.FromNotification(result.Notification))
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, e entity, title string, form *tableform.Form, state tableform.State, toast *flash.Toast) {
	out, err := form.Render(r.Context(), state)
	if err != nil {
		s.formUnavailable(w, r, e, err)
		return
	}
	s.render(w, r, status, page{Title: title, Path: e.path, Content: string(out), Toast: toast})
}

func (s *Server) formUnavailable(w http.ResponseWriter, r *http.Request, e entity, err error) {
	s.logger.Error("form unavailable", logging.String("form", e.formID), logging.Error(err))
	s.renderError(w, r, http.StatusInternalServerError, e.title, messageFormError, e.path)
}

func (s *Server) deletePage(e entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := e.remove(r.Context(), mux.Vars(r)["id"])
		if result.OK {
			flash.Set(w, flash.Success(e.deleted))
		} else {
			flash.Set(w, flash.Error(e.deleteFail))
		}
		http.Redirect(w, r, e.path, http.StatusSeeOther)
	}
}

func pageFormOptions(e entity, action string, editing bool) []tableform.Option {
	return []tableform.Option{
		tableform.WithAction(action, http.MethodPost),
		tableform.WithMessages(forms.Messages(e.formID, editing)),
	}
}

// outcome adapts an action result to a submit handler return.
func outcome(result actions.ActionResult) (bool, error) {
	if result.OK() {
		return true, nil
	}
	return false, tableform.Reject(*result.Error)
}
