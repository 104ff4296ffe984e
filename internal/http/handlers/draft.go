package handlers

import (
	"errors"
	"net/http"

	"reliefdesk/internal/domain"
	"reliefdesk/internal/locale"
	"reliefdesk/internal/middleware"
)

type draftDTO struct {
	Preset        int64  `json:"preset"`
	CustomAmount  string `json:"custom_amount"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Message       string `json:"message"`
	PresetDisplay string `json:"preset_display"`
}

func newDraftDTO(loc string, d domain.Draft) draftDTO {
	return draftDTO{
		Preset:        d.Preset,
		CustomAmount:  d.CustomAmount,
		Name:          d.Name,
		Email:         d.Email,
		Message:       d.Message,
		PresetDisplay: locale.FormatAmount(loc, d.Preset),
	}
}

type draftPatchRequest struct {
	Preset       *int64  `json:"preset"`
	CustomAmount *string `json:"custom_amount"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Message      *string `json:"message"`
}

func (p draftPatchRequest) patch() domain.DraftPatch {
	return domain.DraftPatch{
		Preset:       p.Preset,
		CustomAmount: p.CustomAmount,
		Name:         p.Name,
		Email:        p.Email,
		Message:      p.Message,
	}
}

type presetRequest struct {
	Amount int64 `json:"amount"`
}

func (a *App) Presets(w http.ResponseWriter, r *http.Request) {
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	loc := middleware.LocaleFromContext(r.Context())
	presets := m.Presets()
	display := make([]string, len(presets))
	for i, p := range presets {
		display[i] = locale.FormatAmount(loc, p)
	}
	a.json(w, http.StatusOK, map[string]any{
		"presets":         presets,
		"presets_display": display,
		"minimum":         domain.MinimumAmount,
	})
}

func (a *App) DraftGet(w http.ResponseWriter, r *http.Request) {
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, newDraftDTO(middleware.LocaleFromContext(r.Context()), m.Draft()))
}

func (a *App) DraftUpdate(w http.ResponseWriter, r *http.Request) {
	var req draftPatchRequest
	if _, err := decodeOptional(r, &req); err != nil {
		a.badPayload(w, r)
		return
	}
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	draft, err := m.UpdateDraft(req.patch())
	if err != nil {
		a.draftError(w, r, err, req.Preset)
		return
	}
	a.json(w, http.StatusOK, newDraftDTO(middleware.LocaleFromContext(r.Context()), draft))
}

func (a *App) DraftSelectPreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if ok, err := decodeOptional(r, &req); err != nil || !ok {
		a.badPayload(w, r)
		return
	}
	m, ok := a.manager(w, r)
	if !ok {
		return
	}
	draft, err := m.SelectPreset(req.Amount)
	if err != nil {
		a.draftError(w, r, err, &req.Amount)
		return
	}
	a.json(w, http.StatusOK, newDraftDTO(middleware.LocaleFromContext(r.Context()), draft))
}

func (a *App) draftError(w http.ResponseWriter, r *http.Request, err error, preset *int64) {
	if errors.Is(err, domain.ErrUnknownPreset) && preset != nil {
		loc := middleware.LocaleFromContext(r.Context())
		a.error(w, http.StatusBadRequest, "unknown_preset", locale.Sprintf(loc, locale.MsgUnknownPreset, *preset))
		return
	}
	a.Logger.Error().Err(err).Msg("draft update failed")
	a.error(w, http.StatusInternalServerError, "internal", "failed to update draft")
}
