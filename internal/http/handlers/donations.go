package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reliefdesk/internal/domain"
	"reliefdesk/internal/locale"
	"reliefdesk/internal/middleware"
)

type donationDTO struct {
	ID            string     `json:"id"`
	DonorName     string     `json:"donor_name"`
	DonorEmail    string     `json:"donor_email"`
	Amount        int64      `json:"amount"`
	AmountDisplay string     `json:"amount_display"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
}

func newDonationDTO(loc string, d domain.Donation) donationDTO {
	return donationDTO{
		ID:            d.ID,
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		Amount:        d.Amount,
		AmountDisplay: locale.FormatAmount(loc, d.Amount),
		Message:       d.Message,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		ReviewedAt:    d.ReviewedAt,
	}
}

type summaryDTO struct {
	Total          int   `json:"total"`
	Pending        int   `json:"pending"`
	Approved       int   `json:"approved"`
	Rejected       int   `json:"rejected"`
	ApprovedAmount int64 `json:"approved_amount"`
	PendingAmount  int64 `json:"pending_amount"`
}

type reviewResponse struct {
	Applied  bool         `json:"applied"`
	Donation *donationDTO `json:"donation"`
}

// DonationsCreate optionally applies a draft patch from the body, then
// submits the session draft. A failed validation keeps the draft.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req draftPatchRequest
	hasBody, err := decodeOptional(r, &req)
	if err != nil {
		a.badPayload(w, r)
		return
	}
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	loc := middleware.LocaleFromContext(r.Context())
	var patch domain.DraftPatch
	if hasBody {
		patch = req.patch()
	}

	record, draft, err := m.SubmitDraft(patch)
	switch {
	case errors.Is(err, domain.ErrUnknownPreset):
		a.draftError(w, r, err, req.Preset)
		return
	case errors.Is(err, domain.ErrInvalidAmount):
		a.json(w, http.StatusUnprocessableEntity, map[string]any{
			"error": errorDetail{Code: "invalid_amount", Message: locale.Sprintf(loc, locale.MsgMinimumDonation, domain.MinimumAmount)},
			"draft": newDraftDTO(loc, draft),
		})
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("donation submit failed")
		a.error(w, http.StatusInternalServerError, "internal", locale.Sprintf(loc, locale.MsgSubmitFailed))
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"donation": newDonationDTO(loc, record),
		"message":  locale.Sprintf(loc, locale.MsgSubmitted, record.ID),
		"draft":    newDraftDTO(loc, draft),
	})
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	loc := middleware.LocaleFromContext(r.Context())
	records := m.Donations()
	items := make([]donationDTO, 0, len(records))
	for _, d := range records {
		items = append(items, newDonationDTO(loc, d))
	}
	sum := m.Summary()
	resp := map[string]any{
		"items": items,
		"summary": summaryDTO{
			Total:          sum.Total,
			Pending:        sum.Pending,
			Approved:       sum.Approved,
			Rejected:       sum.Rejected,
			ApprovedAmount: sum.ApprovedAmount,
			PendingAmount:  sum.PendingAmount,
		},
	}
	if len(items) == 0 {
		resp["empty_message"] = locale.Sprintf(loc, locale.MsgNoDonations)
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) DonationGet(w http.ResponseWriter, r *http.Request) {
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	loc := middleware.LocaleFromContext(r.Context())
	record, err := m.Get(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", locale.Sprintf(loc, locale.MsgNotFound))
		return
	}
	a.json(w, http.StatusOK, newDonationDTO(loc, record))
}

// DonationApprove and DonationReject never fail: reviewing an unknown or
// already decided donation reports applied=false.
func (a *App) DonationApprove(w http.ResponseWriter, r *http.Request) {
	a.review(w, r, domain.DecisionApprove)
}

func (a *App) DonationReject(w http.ResponseWriter, r *http.Request) {
	a.review(w, r, domain.DecisionReject)
}

type reviewRequest struct {
	Decision string `json:"decision"`
}

// DonationReview takes the decision from the body: {"decision":"approve"}.
func (a *App) DonationReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if ok, err := decodeOptional(r, &req); err != nil || !ok {
		a.badPayload(w, r)
		return
	}
	decision, ok := domain.ParseDecision(req.Decision)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "decision must be approve or reject")
		return
	}
	a.review(w, r, decision)
}

func (a *App) review(w http.ResponseWriter, r *http.Request, decision domain.Decision) {
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	record, applied, found := m.Review(chi.URLParam(r, "id"), decision)
	resp := reviewResponse{Applied: applied}
	if found {
		dto := newDonationDTO(middleware.LocaleFromContext(r.Context()), record)
		resp.Donation = &dto
	}
	a.json(w, http.StatusOK, resp)
}
