package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
)

type createResponse struct {
	Donation donationDTO `json:"donation"`
	Message  string      `json:"message"`
	Draft    draftDTO    `json:"draft"`
}

type invalidResponse struct {
	Error errorDetail `json:"error"`
	Draft draftDTO    `json:"draft"`
}

type listResponse struct {
	Items        []donationDTO `json:"items"`
	Summary      summaryDTO    `json:"summary"`
	EmptyMessage string        `json:"empty_message"`
}

func TestDonationsCreate_PresetAnonymous(t *testing.T) {
	app := newTestApp(t)
	rr := serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations", body: `{"preset":100}`})
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	resp := decodeBody[createResponse](t, rr)
	got := resp.Donation
	if got.ID != "DON-1" || got.DonorName != "Anonymous" || got.Amount != 100 || got.Status != "pending" {
		t.Fatalf("unexpected donation: %#v", got)
	}
	if got.AmountDisplay != "₹100" {
		t.Fatalf("amount_display = %q, want ₹100", got.AmountDisplay)
	}
	if resp.Draft.Preset != 100 || resp.Draft.CustomAmount != "" {
		t.Fatalf("draft after submit = %#v", resp.Draft)
	}
}

func TestDonationsCreate_InvalidAmountKeepsDraft(t *testing.T) {
	app := newTestApp(t)
	rr := serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations", body: `{"custom_amount":"5","name":"Sari"}`, locale: "id"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status code: got %d, want 422", rr.Code)
	}
	resp := decodeBody[invalidResponse](t, rr)
	if resp.Error.Code != "invalid_amount" || resp.Error.Message != "Donasi minimal 10" {
		t.Fatalf("unexpected error: %#v", resp.Error)
	}
	if resp.Draft.CustomAmount != "5" || resp.Draft.Name != "Sari" {
		t.Fatalf("draft not kept: %#v", resp.Draft)
	}

	list := decodeBody[listResponse](t, serve(app.DonationsList, testRequest{method: http.MethodGet, path: "/v1/donations", locale: "id"}))
	if len(list.Items) != 0 {
		t.Fatalf("invalid submit created %d donations", len(list.Items))
	}
	if list.EmptyMessage != "Belum ada donasi. Jadilah donatur pertama" {
		t.Fatalf("empty_message = %q", list.EmptyMessage)
	}
}

func TestDonationsCreate_BadPayload(t *testing.T) {
	app := newTestApp(t)
	rr := serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations", body: `{"custom_amount":`})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
	}
}

func TestDonationsCreate_UnknownPreset(t *testing.T) {
	app := newTestApp(t)
	rr := serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations", body: `{"preset":75}`})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
	}
	if resp := decodeBody[errorBody](t, rr); resp.Error.Code != "unknown_preset" {
		t.Fatalf("unexpected error code %q", resp.Error.Code)
	}
}

func TestDonationReview(t *testing.T) {
	app := newTestApp(t)
	for range 2 {
		if rr := serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations", body: `{"custom_amount":"250"}`}); rr.Code != http.StatusCreated {
			t.Fatalf("create status %d", rr.Code)
		}
	}

	rr := serve(app.DonationApprove, testRequest{method: http.MethodPost, params: map[string]string{"id": "DON-1"}, path: "/v1/donations/DON-1/approve"})
	resp := decodeBody[reviewResponse](t, rr)
	if rr.Code != http.StatusOK || !resp.Applied || resp.Donation == nil || resp.Donation.Status != "approved" {
		t.Fatalf("approve response: %d %#v", rr.Code, resp)
	}
	if resp.Donation.ReviewedAt == nil {
		t.Fatalf("reviewed_at missing")
	}

	rr = serve(app.DonationReject, testRequest{method: http.MethodPost, params: map[string]string{"id": "DON-1"}, path: "/v1/donations/DON-1/reject"})
	resp = decodeBody[reviewResponse](t, rr)
	if rr.Code != http.StatusOK || resp.Applied || resp.Donation.Status != "approved" {
		t.Fatalf("second review must be a no-op: %d %#v", rr.Code, resp)
	}

	rr = serve(app.DonationReject, testRequest{method: http.MethodPost, params: map[string]string{"id": "DON-404"}, path: "/v1/donations/DON-404/reject"})
	resp = decodeBody[reviewResponse](t, rr)
	if rr.Code != http.StatusOK || resp.Applied || resp.Donation != nil {
		t.Fatalf("unknown id review: %d %#v", rr.Code, resp)
	}

	list := decodeBody[listResponse](t, serve(app.DonationsList, testRequest{method: http.MethodGet, path: "/v1/donations"}))
	if len(list.Items) != 2 || list.Items[0].Status != "approved" || list.Items[1].Status != "pending" {
		t.Fatalf("unexpected list: %#v", list.Items)
	}
	if list.Summary.Approved != 1 || list.Summary.Pending != 1 || list.Summary.ApprovedAmount != 250 {
		t.Fatalf("unexpected summary: %#v", list.Summary)
	}
}

func TestDonationGet(t *testing.T) {
	app := newTestApp(t)
	serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations"})

	rr := serve(app.DonationGet, testRequest{method: http.MethodGet, params: map[string]string{"id": "DON-1"}, path: "/v1/donations/DON-1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	if got := decodeBody[donationDTO](t, rr); got.Amount != 50 {
		t.Fatalf("amount = %d, want default preset 50", got.Amount)
	}

	rr = serve(app.DonationGet, testRequest{method: http.MethodGet, params: map[string]string{"id": "nope"}, path: "/v1/donations/nope"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status code: got %d, want 404", rr.Code)
	}
}

func TestDonationsAreScopedToSession(t *testing.T) {
	app := newTestApp(t)
	serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations", session: "alice"})

	list := decodeBody[listResponse](t, serve(app.DonationsList, testRequest{method: http.MethodGet, path: "/v1/donations", session: "bob"}))
	if len(list.Items) != 0 {
		t.Fatalf("bob sees alice's donations: %#v", list.Items)
	}
}

func TestDonationReviewWithBody(t *testing.T) {
	app := newTestApp(t)
	serve(app.DonationsCreate, testRequest{method: http.MethodPost, path: "/v1/donations"})

	rr := serve(app.DonationReview, testRequest{method: http.MethodPost, path: "/v1/donations/DON-1/review", params: map[string]string{"id": "DON-1"}, body: `{"decision":"Reject"}`})
	resp := decodeBody[reviewResponse](t, rr)
	if rr.Code != http.StatusOK || !resp.Applied || resp.Donation.Status != "rejected" {
		t.Fatalf("review response: %d %#v", rr.Code, resp)
	}

	rr = serve(app.DonationReview, testRequest{method: http.MethodPost, path: "/v1/donations/DON-1/review", params: map[string]string{"id": "DON-1"}, body: `{"decision":"escalate"}`})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown decision: got %d, want 400", rr.Code)
	}
}

func TestDonationsCreate_ConcurrentBodiesKeepTheirAmounts(t *testing.T) {
	app := newTestApp(t)
	const n = 300
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := int64(100 + i)
			rr := serve(app.DonationsCreate, testRequest{
				method:  http.MethodPost,
				path:    "/v1/donations",
				session: "shared",
				body:    fmt.Sprintf(`{"custom_amount":"%d"}`, want),
			})
			if rr.Code != http.StatusCreated {
				t.Errorf("request %d: got %d, want 201", i, rr.Code)
				return
			}
			var resp createResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Errorf("request %d: decode: %v", i, err)
				return
			}
			if resp.Donation.Amount != want {
				t.Errorf("request %d: amount = %d, want %d", i, resp.Donation.Amount, want)
			}
		}()
	}
	wg.Wait()

	rr := serve(app.DonationsList, testRequest{method: http.MethodGet, path: "/v1/donations", session: "shared"})
	if got := len(decodeBody[listResponse](t, rr).Items); got != n {
		t.Fatalf("got %d donations, want %d", got, n)
	}
}
