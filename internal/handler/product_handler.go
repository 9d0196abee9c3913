package handler

import (
	"encoding/json"
	"net/http"

	"shop-catalog-api/internal/middleware"
	"shop-catalog-api/internal/model"
	"shop-catalog-api/internal/service"
	"shop-catalog-api/pkg/apierror"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	shopID, categoryID, err := productScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.service.List(r.Context(), shopID, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopID, categoryID, err := productScope(r)
	if err != nil {
		writeError(w, err)
		return
	}
	productID, err := urlID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.Get(r.Context(), shopID, categoryID, productID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	shopID, categoryID, err := productScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())

	var payload model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	product, err := h.service.Create(r.Context(), claims, shopID, categoryID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	shopID, categoryID, err := productScope(r)
	if err != nil {
		writeError(w, err)
		return
	}
	productID, err := urlID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())

	var payload model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	product, err := h.service.Update(r.Context(), claims, shopID, categoryID, productID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shopID, categoryID, err := productScope(r)
	if err != nil {
		writeError(w, err)
		return
	}
	productID, err := urlID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())

	if err := h.service.Delete(r.Context(), claims, shopID, categoryID, productID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusNoContent, nil)
}

func productScope(r *http.Request) (int64, int64, error) {
	shopID, err := urlID(r, "shopID")
	if err != nil {
		return 0, 0, err
	}
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		return 0, 0, err
	}
	return shopID, categoryID, nil
}
