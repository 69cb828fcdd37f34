package models

import (
	"time"
)

// Request is one installation verification submission. The document _id is the
// warranty certificate number itself (e.g. "WR167"), which is also duplicated
// into warrantyCertificateNo so exported records stay self-describing.
type Request struct {
	ID                     string    `bson:"_id" json:"id"`
	WarrantyCertificateNo  string    `bson:"warrantyCertificateNo" json:"warrantyCertificateNo"`
	IntegratorName         string    `bson:"integratorName" json:"integratorName"`
	OfficeAddress          string    `bson:"officeAddress" json:"officeAddress"`
	ContactPerson          string    `bson:"contactPerson" json:"contactPerson"`
	ContactNo              string    `bson:"contactNo" json:"contactNo"`
	Email                  string    `bson:"email" json:"email"`
	CustomerProjectSite    string    `bson:"customerProjectSite" json:"customerProjectSite"`
	CustomerContact        string    `bson:"customerContact" json:"customerContact"`
	CustomerAlternate      string    `bson:"customerAlternate,omitempty" json:"customerAlternate"`
	CustomerEmail          string    `bson:"customerEmail" json:"customerEmail"`
	CustomerAlternateEmail string    `bson:"customerAlternateEmail,omitempty" json:"customerAlternateEmail"`
	SerialNumbers          []string  `bson:"serialNumbers" json:"serialNumbers"`
	SitePictures           []string  `bson:"sitePictures" json:"sitePictures"`
	Status                 string    `bson:"status" json:"status"`
	RejectionReason        string    `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StatusPending is the status every request carries on create, and is forced
// back onto a request whenever it is edited and resubmitted.
const StatusPending = "pending"

// Counter is the singleton document tracking the last issued certificate
// number. It lives at counters/warranty_cert and is only ever touched inside
// the allocation transaction.
type Counter struct {
	ID           string `bson:"_id" json:"id"`
	CurrentValue int    `bson:"currentValue" json:"currentValue"`
}
