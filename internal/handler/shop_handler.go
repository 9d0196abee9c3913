package handler

import (
	"encoding/json"
	"net/http"

	"shop-catalog-api/internal/model"
	"shop-catalog-api/internal/service"
	"shop-catalog-api/pkg/apierror"
)

type ShopHandler struct {
	service *service.ShopService
}

func NewShopHandler(service *service.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, shops)
}

func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}

	shop, err := h.service.Get(r.Context(), shopID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, shop)
}

func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	shop, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, shop)
}

func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	shop, err := h.service.Update(r.Context(), shopID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, shop)
}

func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shopID, err := urlID(r, "shopID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), shopID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusNoContent, nil)
}
