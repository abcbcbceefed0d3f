package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/schul-cloud/resources-contract-tests/jsonapi"
	"github.com/schul-cloud/resources-contract-tests/schema"
	"github.com/schul-cloud/resources-contract-tests/server/store"
)

func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	resources := s.store.List()
	wire := make([]jsonapi.ResourceObject, 0, len(resources))
	for _, res := range resources {
		if !s.checkOutgoing(w, res) {
			return
		}
		wire = append(wire, toWire(res))
	}
	jsonapi.WriteList(w, http.StatusOK, wire)
}

func (s *Server) createResource(w http.ResponseWriter, r *http.Request) {
	attrs, ok := s.readResourceDocument(w, r)
	if !ok {
		return
	}
	res := s.store.Create(attrs)
	s.logger.Info("resource created", "id", res.ID)
	if !s.checkOutgoing(w, res) {
		return
	}
	w.Header().Set("Location", "/v1/resources/"+res.ID)
	jsonapi.WriteResource(w, http.StatusCreated, toWire(res))
}

func (s *Server) getResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, ok := s.store.Get(id)
	if !ok {
		s.writeNotFound(w, id)
		return
	}
	s.writeResource(w, http.StatusOK, res)
}

func (s *Server) updateResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	attrs, ok := s.readResourceDocument(w, r)
	if !ok {
		return
	}
	res, ok := s.store.Replace(id, attrs)
	if !ok {
		s.writeNotFound(w, id)
		return
	}
	s.logger.Info("resource updated", "id", id)
	s.writeResource(w, http.StatusOK, res)
}

func (s *Server) deleteResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Delete(id) {
		s.writeNotFound(w, id)
		return
	}
	s.logger.Info("resource deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteAllResources(w http.ResponseWriter, r *http.Request) {
	n := s.store.DeleteAll()
	s.logger.Info("deleted all resources", "count", n)
	w.WriteHeader(http.StatusNoContent)
}

// readResourceDocument reads a request body and checks it in two stages:
// the JSON:API envelope first (failures are 400), then the attributes
// against the resource schema (failures are 422, one error object per
// violation). It writes the error response itself and reports false if the
// body was not acceptable.
func (s *Server) readResourceDocument(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonapi.WriteError(w, http.StatusBadRequest,
			jsonapi.NewError(http.StatusBadRequest, "cannot read request body"))
		return nil, false
	}
	doc, err := jsonapi.DecodeDocument(body)
	if err != nil {
		jsonapi.WriteError(w, http.StatusBadRequest,
			jsonapi.NewError(http.StatusBadRequest, err.Error()))
		return nil, false
	}
	if err := schema.Validate(doc.Data.Attributes); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			jsonapi.WriteError(w, http.StatusUnprocessableEntity, validationErrors(verr)...)
		} else {
			jsonapi.WriteError(w, http.StatusBadRequest,
				jsonapi.NewError(http.StatusBadRequest, err.Error()))
		}
		return nil, false
	}
	return doc.Data.Attributes, true
}

// writeResource sends a stored resource, re-validating it against the schema
// first. Every outgoing document goes through this check; a violation means
// the server itself is broken, so it answers 500 rather than handing out a
// document that contradicts its own contract.
func (s *Server) writeResource(w http.ResponseWriter, status int, res store.Resource) {
	if !s.checkOutgoing(w, res) {
		return
	}
	jsonapi.WriteResource(w, status, toWire(res))
}

func (s *Server) checkOutgoing(w http.ResponseWriter, res store.Resource) bool {
	if err := schema.Validate(res.Attributes); err != nil {
		s.logger.Error("stored resource fails schema validation", "id", res.ID, "error", err.Error())
		jsonapi.WriteError(w, http.StatusInternalServerError,
			jsonapi.NewError(http.StatusInternalServerError, "stored resource does not conform to the schema"))
		return false
	}
	return true
}

func (s *Server) writeNotFound(w http.ResponseWriter, id string) {
	jsonapi.WriteError(w, http.StatusNotFound,
		jsonapi.NewError(http.StatusNotFound, fmt.Sprintf("no resource with id %q", id)))
}

func toWire(res store.Resource) jsonapi.ResourceObject {
	return jsonapi.ResourceObject{Type: jsonapi.TypeResource, ID: res.ID, Attributes: res.Attributes}
}

// validationErrors turns schema violations into one error object each, with
// a JSON pointer into the request document.
func validationErrors(verr *schema.ValidationError) []jsonapi.ErrorObject {
	errs := make([]jsonapi.ErrorObject, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		e := jsonapi.NewError(http.StatusUnprocessableEntity, issue.Description)
		e.Source = &jsonapi.ErrorSource{Pointer: issuePointer(issue)}
		errs = append(errs, e)
	}
	return errs
}

// issuePointer maps the dotted field paths that the validator reports, such
// as "languages.0", onto JSON pointers into the request document.
func issuePointer(issue schema.Issue) string {
	pointer := "/data/attributes"
	if issue.Field != "" && issue.Field != "(root)" {
		pointer += "/" + strings.ReplaceAll(issue.Field, ".", "/")
	}
	return pointer
}
