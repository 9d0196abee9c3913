package handler

import (
	"encoding/json"
	"net/http"

	"shop-catalog-api/internal/model"
	"shop-catalog-api/internal/service"
	"shop-catalog-api/pkg/apierror"
)

type CategoryHandler struct {
	service *service.CategoryService
}

func NewCategoryHandler(service *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}

	categories, err := h.service.List(r.Context(), shopID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := h.service.Get(r.Context(), shopID, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	category, err := h.service.Create(r.Context(), shopID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	category, err := h.service.Update(r.Context(), shopID, categoryID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), shopID, categoryID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusNoContent, nil)
}
