package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/storage"
)

// BillsHandler handles bill-related HTTP requests.
type BillsHandler struct {
	*Base
	defaultCurrency string
}

// NewBillsHandler creates a new bills handler. New bills without an
// explicit currency get defaultCurrency.
func NewBillsHandler(repo storage.Repository, defaultCurrency string) *BillsHandler {
	return &BillsHandler{
		Base:            NewBase(repo),
		defaultCurrency: defaultCurrency,
	}
}

// Create handles POST /api/bills - creates a bill from an optional
// initial snapshot of items, diners and assignments.
func (h *BillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	bill, apiErr := h.billFromRequest(req.Title, req.Currency, req.ServiceRate, req.Items, req.Diners, req.Assignments)
	if apiErr != nil {
		h.WriteError(w, http.StatusBadRequest, *apiErr)
		return
	}

	bill.ID = uuid.New().String()
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	if err := h.repo.SaveBill(bill); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, toBillResponse(bill))
}

// List handles GET /api/bills - returns paginated bill summaries,
// newest first.
func (h *BillsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := ParseIntParam(r, "limit", 50)
	offset := ParseIntParam(r, "offset", 0)

	result, err := h.repo.ListBills(limit, offset)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.BillListResponse{
		Bills:      make([]dto.BillSummaryResponse, 0, len(result.Bills)),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
	for _, bill := range result.Bills {
		response.Bills = append(response.Bills, toBillSummary(bill))
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/bills/{id} - returns a single bill.
func (h *BillsHandler) Get(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, toBillResponse(bill))
}

// Update handles PUT /api/bills/{id} - replaces the bill's snapshot.
func (h *BillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	updated, apiErr := h.billFromRequest(req.Title, req.Currency, req.ServiceRate, req.Items, req.Diners, req.Assignments)
	if apiErr != nil {
		h.WriteError(w, http.StatusBadRequest, *apiErr)
		return
	}

	updated.ID = bill.ID
	updated.CreatedAt = bill.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := h.repo.SaveBill(updated); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, toBillResponse(updated))
}

// Delete handles DELETE /api/bills/{id}.
func (h *BillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteBill(id); err != nil {
		if errors.Is(err, storage.ErrBillNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("bill"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItems handles POST /api/bills/{id}/items - appends one named item,
// or count blank items when count is set.
func (h *BillsHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	var req dto.AddItemsRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	if len(bill.Items)+count > receipt.MaxItems {
		h.WriteError(w, http.StatusUnprocessableEntity, dto.LimitReachedError(
			fmt.Sprintf("a bill can have at most %d items", receipt.MaxItems)))
		return
	}

	for i := 0; i < count; i++ {
		item := receipt.NewLineItem()
		if req.Count == 0 {
			item.Name = req.Name
			if req.Price != nil {
				price, err := money.ParsePrice(*req.Price)
				if err != nil {
					h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
					return
				}
				item.Price = &price
			}
		}
		bill.Items = append(bill.Items, item)
	}

	h.saveAndRespond(w, bill)
}

// UpdateItem handles PUT /api/bills/{id}/items/{itemID} - edits an
// item's name and price. A nil price clears the price.
func (h *BillsHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid item ID"))
		return
	}

	var req dto.UpdateItemRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	idx := -1
	for i, item := range bill.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("item"))
		return
	}

	bill.Items[idx].Name = req.Name
	bill.Items[idx].Price = nil
	if req.Price != nil {
		price, err := money.ParsePrice(*req.Price)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
			return
		}
		bill.Items[idx].Price = &price
	}

	h.saveAndRespond(w, bill)
}

// AddDiner handles POST /api/bills/{id}/diners. An empty name asks the
// server for the next free "Diner N" suggestion; an explicit name that
// collides case-insensitively with an existing diner is a conflict.
func (h *BillsHandler) AddDiner(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	var req dto.AddDinerRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	if len(bill.Diners) >= receipt.MaxDiners {
		h.WriteError(w, http.StatusUnprocessableEntity, dto.LimitReachedError(
			fmt.Sprintf("a bill can have at most %d diners", receipt.MaxDiners)))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = nextDinerName(bill.Diners)
	} else if dinerNameTaken(bill.Diners, name) {
		h.WriteError(w, http.StatusConflict, dto.ConflictError(
			fmt.Sprintf("a diner named %q already exists", name)))
		return
	}

	bill.Diners = append(bill.Diners, receipt.NewDiner(name))
	h.saveAndRespond(w, bill)
}

// ToggleAssignment handles POST /api/bills/{id}/items/{itemID}/assignments/{dinerID}.
// Repeating the request undoes it.
func (h *BillsHandler) ToggleAssignment(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid item ID"))
		return
	}
	dinerID, err := uuid.Parse(chi.URLParam(r, "dinerID"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid diner ID"))
		return
	}

	if !billHasItem(bill, itemID) {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("item"))
		return
	}
	if !billHasDiner(bill, dinerID) {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("diner"))
		return
	}

	if bill.Assignments == nil {
		bill.Assignments = receipt.Assignments{}
	}
	bill.Assignments.Toggle(itemID, dinerID)

	h.saveAndRespond(w, bill)
}

// SetServiceCharge handles PUT /api/bills/{id}/service-charge.
func (h *BillsHandler) SetServiceCharge(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	var req dto.ServiceChargeRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	rate, err := money.ParseRate(req.Rate)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	bill.ServiceRate = rate
	h.saveAndRespond(w, bill)
}

// loadBill fetches the bill named by the {id} URL param, writing the
// error response itself when the bill cannot be served.
func (h *BillsHandler) loadBill(w http.ResponseWriter, r *http.Request) (*storage.BillRecord, bool) {
	id := chi.URLParam(r, "id")
	bill, err := h.repo.GetBill(id)
	if err != nil {
		if errors.Is(err, storage.ErrBillNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("bill"))
			return nil, false
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}
	return bill, true
}

func (h *BillsHandler) saveAndRespond(w http.ResponseWriter, bill *storage.BillRecord) {
	bill.UpdatedAt = time.Now().UTC()
	if err := h.repo.SaveBill(bill); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	h.WriteJSON(w, http.StatusOK, toBillResponse(bill))
}

// billFromRequest validates and converts a create/update payload into a
// storage record. Returns an API error describing the first problem found.
func (h *BillsHandler) billFromRequest(title, currency, serviceRate string, items []dto.ItemRequest, diners []dto.DinerRequest, assignments map[string][]string) (*storage.BillRecord, *dto.APIError) {
	bill := &storage.BillRecord{
		Title:    title,
		Currency: strings.ToUpper(currency),
	}
	if bill.Currency == "" {
		bill.Currency = h.defaultCurrency
	}

	if serviceRate != "" {
		rate, err := money.ParseRate(serviceRate)
		if err != nil {
			apiErr := dto.BadRequestError(err.Error())
			return nil, &apiErr
		}
		bill.ServiceRate = rate
	}

	bill.Items = make([]receipt.LineItem, 0, len(items))
	for _, ir := range items {
		item := receipt.NewLineItem()
		item.Name = ir.Name
		if ir.Price != nil {
			price, err := money.ParsePrice(*ir.Price)
			if err != nil {
				apiErr := dto.BadRequestError(err.Error())
				return nil, &apiErr
			}
			item.Price = &price
		}
		bill.Items = append(bill.Items, item)
	}

	bill.Diners = make([]receipt.Diner, 0, len(diners))
	for _, dr := range diners {
		name := strings.TrimSpace(dr.Name)
		if dinerNameTaken(bill.Diners, name) {
			apiErr := dto.ConflictError(fmt.Sprintf("a diner named %q already exists", name))
			return nil, &apiErr
		}
		bill.Diners = append(bill.Diners, receipt.NewDiner(name))
	}

	// Assignments in a create/update payload reference items and diners
	// by position index, since ids are minted server-side.
	if len(assignments) > 0 {
		bill.Assignments = receipt.Assignments{}
		for itemKey, dinerKeys := range assignments {
			itemIdx, err := parseIndex(itemKey, len(bill.Items))
			if err != nil {
				apiErr := dto.BadRequestError(fmt.Sprintf("assignment item %q: %v", itemKey, err))
				return nil, &apiErr
			}
			for _, dinerKey := range dinerKeys {
				dinerIdx, err := parseIndex(dinerKey, len(bill.Diners))
				if err != nil {
					apiErr := dto.BadRequestError(fmt.Sprintf("assignment diner %q: %v", dinerKey, err))
					return nil, &apiErr
				}
				bill.Assignments.Toggle(bill.Items[itemIdx].ID, bill.Diners[dinerIdx].ID)
			}
		}
	}

	return bill, nil
}

func parseIndex(key string, length int) (int, error) {
	var idx int
	if _, err := fmt.Sscanf(key, "%d", &idx); err != nil {
		return 0, errors.New("not a valid index")
	}
	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("index %d out of range", idx)
	}
	return idx, nil
}

func billHasItem(bill *storage.BillRecord, itemID uuid.UUID) bool {
	for _, item := range bill.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func billHasDiner(bill *storage.BillRecord, dinerID uuid.UUID) bool {
	for _, diner := range bill.Diners {
		if diner.ID == dinerID {
			return true
		}
	}
	return false
}

func dinerNameTaken(diners []receipt.Diner, name string) bool {
	for _, d := range diners {
		if strings.EqualFold(d.Name, name) {
			return true
		}
	}
	return false
}

// nextDinerName suggests "Diner N" for the first N past the current
// count that no existing diner already uses.
func nextDinerName(diners []receipt.Diner) string {
	for n := len(diners) + 1; ; n++ {
		candidate := fmt.Sprintf("Diner %d", n)
		if !dinerNameTaken(diners, candidate) {
			return candidate
		}
	}
}

// toBillResponse converts a storage record to an API response.
func toBillResponse(bill *storage.BillRecord) dto.BillResponse {
	r := bill.Receipt()

	response := dto.BillResponse{
		ID:               bill.ID,
		Title:            bill.Title,
		Currency:         bill.Currency,
		ServiceRate:      bill.ServiceRate.String(),
		Items:            make([]dto.ItemResponse, 0, len(bill.Items)),
		Diners:           make([]dto.DinerResponse, 0, len(bill.Diners)),
		Assignments:      make(map[string][]string, len(bill.Assignments)),
		Total:            money.Format(r.Total()),
		TotalWithService: money.Format(r.TotalWithService()),
		CreatedAt:        bill.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        bill.UpdatedAt.Format(time.RFC3339),
	}

	for _, item := range bill.Items {
		ir := dto.ItemResponse{
			ID:   item.ID.String(),
			Name: item.Name,
		}
		if item.Price != nil {
			formatted := money.Format(*item.Price)
			ir.Price = &formatted
		}
		response.Items = append(response.Items, ir)
	}

	for _, diner := range bill.Diners {
		response.Diners = append(response.Diners, dto.DinerResponse{
			ID:   diner.ID.String(),
			Name: diner.Name,
		})
	}

	for itemID, dinerIDs := range bill.Assignments {
		ids := make([]string, 0, len(dinerIDs))
		for _, dinerID := range dinerIDs {
			ids = append(ids, dinerID.String())
		}
		response.Assignments[itemID.String()] = ids
	}

	return response
}

func toBillSummary(bill *storage.BillRecord) dto.BillSummaryResponse {
	r := bill.Receipt()
	return dto.BillSummaryResponse{
		ID:               bill.ID,
		Title:            bill.Title,
		Currency:         bill.Currency,
		Total:            money.Format(r.Total()),
		TotalWithService: money.Format(r.TotalWithService()),
		ItemCount:        len(bill.Items),
		DinerCount:       len(bill.Diners),
		CreatedAt:        bill.CreatedAt.Format(time.RFC3339),
	}
}
