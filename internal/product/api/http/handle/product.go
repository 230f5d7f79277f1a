package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kennyy02/Samgyupmasaya/internal/product/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/app/services"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/product/domain/models"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type ProductHandler struct {
	productService *services.ProductService
	mylog          *logger.Logger
}

func NewProductHandler(productService *services.ProductService, mylog *logger.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		mylog:          mylog,
	}
}

// pathParams pulls the sealed set variant and, when wanted, the numeric id
// out of the request path.
func pathParams(r *http.Request, withID bool) (models.Set, int64, error) {
	set, err := models.ParseSet(r.PathValue("set"))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	if !withID {
		return set, 0, nil
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: invalid product id", core.ErrValidation)
	}
	return set, id, nil
}

func (ph *ProductHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, _, err := pathParams(r, false)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		products, err := ph.productService.List(ctx, set)
		if err != nil {
			ph.mylog.Error("", "product_list_failed", "Failed to list products", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch products"))
			return
		}
		jsonResponse(w, http.StatusOK, products)
	}
}

func (ph *ProductHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, id, err := pathParams(r, true)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		product, err := ph.productService.Get(ctx, set, id)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}
		jsonResponse(w, http.StatusOK, product)
	}
}

func (ph *ProductHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, _, err := pathParams(r, false)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		var req dto.ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		id, err := ph.productService.Create(ctx, set, req)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"message": fmt.Sprintf("%s product added", set),
			"id":      id,
		})
	}
}

func (ph *ProductHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, id, err := pathParams(r, true)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		var req dto.ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := ph.productService.Update(ctx, set, id, req); err != nil {
			jsonError(w, statusFor(err), err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("%s product updated", set),
		})
	}
}

// DecrementStock handles PATCH /products/{set}/{id}: the atomic stock
// decrement consumed by the order workflow at Delivered/Served.
func (ph *ProductHandler) DecrementStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, id, err := pathParams(r, true)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		var req dto.DecrementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		newStock, err := ph.productService.DecrementStock(ctx, set, id, req.Quantity)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}
		jsonResponse(w, http.StatusOK, dto.DecrementResponse{
			Message:  fmt.Sprintf("Stock updated successfully. New stock: %d", newStock),
			NewStock: newStock,
		})
	}
}

func (ph *ProductHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, id, err := pathParams(r, true)
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		if err := ph.productService.Delete(ctx, set, id); err != nil {
			jsonError(w, statusFor(err), err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("%s product deleted", set),
		})
	}
}

func (ph *ProductHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		results, err := ph.productService.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			jsonError(w, statusFor(err), err)
			return
		}
		if results == nil {
			results = []models.SearchResult{}
		}
		jsonResponse(w, http.StatusOK, results)
	}
}

func (ph *ProductHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		categories, err := ph.productService.Categories(ctx)
		if err != nil {
			ph.mylog.Error("", "category_list_failed", "Failed to list categories", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch categories"))
			return
		}
		jsonResponse(w, http.StatusOK, categories)
	}
}

func (ph *ProductHandler) Counts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		counts, err := ph.productService.Counts(ctx)
		if err != nil {
			ph.mylog.Error("", "product_counts_failed", "Failed to count products", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch product counts"))
			return
		}
		jsonResponse(w, http.StatusOK, counts)
	}
}
