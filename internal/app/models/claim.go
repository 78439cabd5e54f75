package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriberRelationshipSelf   = "self"
	SubscriberRelationshipSpouse = "spouse"
	SubscriberRelationshipChild  = "child"
	SubscriberRelationshipOther  = "other"
)

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

type Person struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Address     Address   `json:"address"`
}

type Payer struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	EDIPayerID string `json:"ediPayerId" validate:"required"`
}

type Provider struct {
	NPI       string `json:"npi" validate:"omitempty,npi"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Diagnosis struct {
	Code        string `json:"code" validate:"required,icd10"`
	Description string `json:"description,omitempty"`
	IsPrimary   bool   `json:"isPrimary"`
}

type ServiceLine struct {
	DateOfService     time.Time       `json:"dateOfService" validate:"required"`
	ProcedureCode     string          `json:"procedureCode" validate:"required,procedure"`
	Modifier          string          `json:"modifier,omitempty" validate:"omitempty,len=2"`
	Units             int             `json:"units" validate:"gt=0"`
	ChargeAmount      decimal.Decimal `json:"chargeAmount" validate:"money"`
	DiagnosisPointers []int           `json:"diagnosisPointers" validate:"min=1,max=4,dive,gte=1,lte=12"`
}

// Claim is one professional claim as held by the claim store.
type Claim struct {
	ID                     string              `json:"id"`
	AppointmentID          string              `json:"appointmentId"`
	Patient                Person              `json:"patient"`
	Subscriber             Person              `json:"subscriber"`
	SubscriberRelationship string              `json:"subscriberRelationship" validate:"required,oneof=self spouse child other"`
	Payer                  Payer               `json:"payer"`
	MemberID               string              `json:"memberId" validate:"required"`
	GroupNumber            string              `json:"groupNumber,omitempty"`
	Diagnoses              []Diagnosis         `json:"diagnoses" validate:"min=1,max=12,dive"`
	ServiceLines           []ServiceLine       `json:"serviceLines" validate:"min=1,max=50,dive"`
	RenderingProvider      Provider            `json:"renderingProvider"`
	BillingProviderNPI     string              `json:"billingProviderNpi" validate:"omitempty,npi"`
	PlaceOfService         string              `json:"placeOfService,omitempty"`
	TotalCharge            decimal.Decimal     `json:"totalCharge"`
	Status                 ClaimStatus         `json:"status"`
	ControlNumber          string              `json:"controlNumber,omitempty"`
	PayerClaimNumber       string              `json:"payerClaimNumber,omitempty"`
	EDIFileName            string              `json:"ediFileName,omitempty"`
	SubmittedAt            *time.Time          `json:"submittedAt,omitempty"`
	AcknowledgedAt         *time.Time          `json:"acknowledgedAt,omitempty"`
	AcceptedAt             *time.Time          `json:"acceptedAt,omitempty"`
	RejectedAt             *time.Time          `json:"rejectedAt,omitempty"`
	PaidAt                 *time.Time          `json:"paidAt,omitempty"`
	PaidAmount             decimal.NullDecimal `json:"paidAmount"`
	RejectionReason        string              `json:"rejectionReason,omitempty"`
	RejectionCodes         []string            `json:"rejectionCodes,omitempty"`
	TimeModel
}

// IsPatientSubscriber reports whether the patient is the insured person, in
// which case no separate patient loop is emitted.
func (c *Claim) IsPatientSubscriber() bool {
	return c.SubscriberRelationship == "" || c.SubscriberRelationship == SubscriberRelationshipSelf
}

// SubscriberPerson returns the insured person.
func (c *Claim) SubscriberPerson() Person {
	if c.IsPatientSubscriber() {
		return c.Patient
	}
	return c.Subscriber
}

// ServiceLineTotal sums the charges of all service lines.
func (c *Claim) ServiceLineTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.ServiceLines {
		total = total.Add(line.ChargeAmount)
	}
	return total
}

// OrderedDiagnoses returns the diagnoses with the primary one first. When no
// diagnosis is flagged the first one is treated as primary. The relative
// order of the others is preserved.
func (c *Claim) OrderedDiagnoses() []Diagnosis {
	primaryIndex := 0
	for i, diagnosis := range c.Diagnoses {
		if diagnosis.IsPrimary {
			primaryIndex = i
			break
		}
	}
	ordered := make([]Diagnosis, 0, len(c.Diagnoses))
	if len(c.Diagnoses) == 0 {
		return ordered
	}
	ordered = append(ordered, c.Diagnoses[primaryIndex])
	for i, diagnosis := range c.Diagnoses {
		if i != primaryIndex {
			ordered = append(ordered, diagnosis)
		}
	}
	return ordered
}
