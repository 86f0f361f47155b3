package http

import (
	"net/http"

	"finanzapp/internal/core"
)

const defaultMovementLimit = 50

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := c.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := s.store.CreateCategory(r.Context(), c)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCategory(r.Context(), pathID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	c.ID = pathID(r)
	if err := c.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.UpdateCategory(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	updated, err := s.store.GetCategory(r.Context(), c.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(r.Context(), pathID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := s.store.GetCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	subs, err := s.store.ListSubcategories(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, subs)
}

func (s *Server) handleCreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var sub core.Subcategory
	if !decodeJSON(w, r, &sub) {
		return
	}
	sub.CategoryID = pathID(r)
	if err := sub.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.store.GetCategory(r.Context(), sub.CategoryID); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := s.store.CreateSubcategory(r.Context(), sub)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultMovementLimit)
	movements, err := s.store.ListMovements(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, movements)
}

func (s *Server) handleCreateMovement(w http.ResponseWriter, r *http.Request) {
	var m core.Movement
	if !decodeJSON(w, r, &m) {
		return
	}
	created, err := s.movements.CreateMovement(r.Context(), m)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleGetMovement(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetMovement(r.Context(), pathID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMovement(w http.ResponseWriter, r *http.Request) {
	var m core.Movement
	if !decodeJSON(w, r, &m) {
		return
	}
	m.ID = pathID(r)
	updated, err := s.movements.UpdateMovement(r.Context(), m)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteMovement(w http.ResponseWriter, r *http.Request) {
	if err := s.movements.DeleteMovement(r.Context(), pathID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
