package domain

import (
	"strings"
	"time"
)

// MinimumAmount is the smallest amount a donation may carry.
const MinimumAmount int64 = 10

// AnonymousDonor replaces a blank donor name.
const AnonymousDonor = "Anonymous"

// DonationStatus enumerates donation review states.
type DonationStatus string

const (
	DonationStatusPending  DonationStatus = "pending"
	DonationStatusApproved DonationStatus = "approved"
	DonationStatusRejected DonationStatus = "rejected"
)

// Decision is the outcome an admin applies to a pending donation.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status maps a decision onto the terminal status it produces.
func (d Decision) Status() (DonationStatus, bool) {
	switch d {
	case DecisionApprove:
		return DonationStatusApproved, true
	case DecisionReject:
		return DonationStatusRejected, true
	default:
		return "", false
	}
}

// ParseDecision accepts "approve"/"reject" in any case.
func ParseDecision(raw string) (Decision, bool) {
	d := Decision(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := d.Status(); !ok {
		return "", false
	}
	return d, true
}

// Donation represents a supporter contribution awaiting or past review.
type Donation struct {
	ID         string
	DonorName  string
	DonorEmail string
	Amount     int64
	Message    string
	Status     DonationStatus
	CreatedAt  time.Time
	ReviewedAt *time.Time
}

// Pending reports whether the donation can still be reviewed.
func (d Donation) Pending() bool {
	return d.Status == DonationStatusPending
}

// Draft is the form input collected before a donation is submitted.
type Draft struct {
	Preset       int64
	CustomAmount string
	Name         string
	Email        string
	Message      string
}

// Cleared returns the draft after a successful submission. The preset
// selection survives.
func (d Draft) Cleared() Draft {
	return Draft{Preset: d.Preset}
}

// DraftPatch carries optional draft updates; nil fields are left untouched.
type DraftPatch struct {
	Preset       *int64
	CustomAmount *string
	Name         *string
	Email        *string
	Message      *string
}

// Apply returns a copy of d with the patch applied.
func (p DraftPatch) Apply(d Draft) Draft {
	if p.Preset != nil {
		d.Preset = *p.Preset
	}
	if p.CustomAmount != nil {
		d.CustomAmount = *p.CustomAmount
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Message != nil {
		d.Message = *p.Message
	}
	return d
}

// Summary aggregates a session's donations for the admin table.
type Summary struct {
	Total          int
	Pending        int
	Approved       int
	Rejected       int
	ApprovedAmount int64
	PendingAmount  int64
}
