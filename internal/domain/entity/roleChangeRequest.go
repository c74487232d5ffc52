package entity

import (
	"time"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// RoleChangeRequest is a user's request to be granted another role.
// The only transitions are PENDING -> APPROVED and PENDING -> REJECTED.
type RoleChangeRequest struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	UserEmail     string        `json:"userEmail"`
	CurrentRole   Role          `json:"currentRole"`
	RequestedRole Role          `json:"requestedRole"`
	Reason        string        `json:"reason"`
	Status        RequestStatus `json:"status"`
	ReviewedBy    string        `json:"reviewedBy"`
	ReviewNotes   string        `json:"reviewNotes"`
	CreatedAt     time.Time     `json:"createdAt"`
	ReviewedAt    time.Time     `json:"reviewedAt"`
}

func (r *RoleChangeRequest) CanBeApproved() bool {
	return r.Status == RequestPending
}

func (r *RoleChangeRequest) IsPending() bool {
	return r.Status == RequestPending
}

func (r *RoleChangeRequest) Approve(reviewerID, notes string, now time.Time) error {
	return r.review(RequestApproved, reviewerID, notes, now)
}

func (r *RoleChangeRequest) Reject(reviewerID, notes string, now time.Time) error {
	return r.review(RequestRejected, reviewerID, notes, now)
}

func (r *RoleChangeRequest) review(status RequestStatus, reviewerID, notes string, now time.Time) error {
	if !r.CanBeApproved() {
		return errorz.ErrRequestNotPending
	}
	r.Status = status
	r.ReviewedBy = reviewerID
	r.ReviewNotes = notes
	r.ReviewedAt = now
	return nil
}

func (r *RoleChangeRequest) ToMap() Document {
	return Document{
		"id":            r.ID,
		"userId":        r.UserID,
		"userName":      r.UserName,
		"userEmail":     r.UserEmail,
		"currentRole":   string(r.CurrentRole),
		"requestedRole": string(r.RequestedRole),
		"reason":        r.Reason,
		"status":        string(r.Status),
		"reviewedBy":    r.ReviewedBy,
		"reviewNotes":   r.ReviewNotes,
		"createdAt":     r.CreatedAt,
		"reviewedAt":    r.ReviewedAt,
	}
}

func RoleChangeRequestFromMap(doc Document) (*RoleChangeRequest, error) {
	var request RoleChangeRequest
	if err := decodeDocument(doc, &request); err != nil {
		return nil, err
	}
	return &request, nil
}
