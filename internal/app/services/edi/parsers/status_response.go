package parsers

import (
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/edi/codes"
	"claimsync-service/internal/pkg/x12"

	"github.com/shopspring/decimal"
)

const (
	segmentTRN = "TRN"
	segmentSTC = "STC"
	segmentREF = "REF"
	segmentDTP = "DTP"
	segmentNM1 = "NM1"
	segmentHL  = "HL"

	traceTypeCurrentTransaction  = "2"
	refQualifierPayerClaimNumber = "1K"
	dateQualifierServiceDate     = "472"
	entityPatient                = "QC"

	hierarchicalLevelSubscriber = "22"
	hierarchicalLevelDependent  = "23"
	hierarchicalLevelPatient    = "PT"
)

// isClaimLevel reports whether an HL03 level code carries claim status
// loops. Source, receiver and provider levels carry their own TRN and STC.
func isClaimLevel(levelCode string) bool {
	switch levelCode {
	case hierarchicalLevelSubscriber, hierarchicalLevelDependent, hierarchicalLevelPatient:
		return true
	}
	return false
}

// ClaimStatusEntry is one claim loop of a 277, from its TRN to the next TRN
// or HL.
type ClaimStatusEntry struct {
	ControlNumber    string              `json:"controlNumber"`
	PayerClaimNumber string              `json:"payerClaimNumber,omitempty"`
	CategoryCode     string              `json:"categoryCode"`
	StatusCode       string              `json:"statusCode,omitempty"`
	EntityCode       string              `json:"entityCode,omitempty"`
	Status           models.ClaimStatus  `json:"status"`
	Description      string              `json:"description"`
	StatusDate       *time.Time          `json:"statusDate,omitempty"`
	ChargeAmount     decimal.NullDecimal `json:"chargeAmount"`
	PaymentAmount    decimal.NullDecimal `json:"paymentAmount"`
	ServiceDate      *time.Time          `json:"serviceDate,omitempty"`
	PatientLastName  string              `json:"patientLastName,omitempty"`
	PatientFirstName string              `json:"patientFirstName,omitempty"`

	// AdditionalCategoryCodes are the categories of any STC after the first.
	AdditionalCategoryCodes []string `json:"additionalCategoryCodes,omitempty"`
}

// IsRejected reports whether the entry's category is in the rejection
// family. It looks at the category code, not the mapped status.
func (e ClaimStatusEntry) IsRejected() bool {
	return codes.IsRejectionCategory(e.CategoryCode)
}

func (e ClaimStatusEntry) IsAccepted() bool {
	return codes.IsAcceptanceCategory(e.CategoryCode)
}

// ResponseCode is the category and status pair as it appeared in STC01.
func (e ClaimStatusEntry) ResponseCode() string {
	if e.StatusCode == "" {
		return e.CategoryCode
	}
	return e.CategoryCode + ":" + e.StatusCode
}

// StatusResponse is a parsed 277.
type StatusResponse struct {
	Envelope
	Claims        []ClaimStatusEntry `json:"claims"`
	HasRejections bool               `json:"hasRejections"`
	TotalClaims   int                `json:"totalClaims"`
	UnknownCodes  []string           `json:"unknownCodes,omitempty"`
}

func (r *StatusResponse) RejectedClaims() []ClaimStatusEntry {
	var rejected []ClaimStatusEntry
	for _, claim := range r.Claims {
		if claim.IsRejected() {
			rejected = append(rejected, claim)
		}
	}
	return rejected
}

func (r *StatusResponse) AcceptedClaims() []ClaimStatusEntry {
	var accepted []ClaimStatusEntry
	for _, claim := range r.Claims {
		if claim.IsAccepted() {
			accepted = append(accepted, claim)
		}
	}
	return accepted
}

func ParseStatusResponse(content string) (*StatusResponse, error) {
	segments, err := x12.Tokenize(content)
	if err != nil {
		return nil, err
	}
	return ReadStatusResponse(segments), nil
}

func ReadStatusResponse(segments []x12.Segment) *StatusResponse {
	response := &StatusResponse{
		Envelope: readEnvelope(segments),
		Claims:   []ClaimStatusEntry{},
	}

	// Without any HL the transaction is read as a flat list of claim loops.
	var (
		current                   *ClaimStatusEntry
		patientLast, patientFirst string
		seenHL                    bool
		levelCode                 string
	)
	closeClaim := func() {
		if current == nil {
			return
		}
		if current.CategoryCode == "" {
			current.Status = models.ClaimStatusPending
			current.Description = "No status reported"
		}
		response.Claims = append(response.Claims, *current)
		current = nil
	}

	for _, segment := range segments {
		switch segment.ID {
		case x12.SegmentST:
			closeClaim()
			seenHL, levelCode = false, ""
		case segmentHL:
			closeClaim()
			seenHL, levelCode = true, segment.Element(2)
		case segmentNM1:
			// The patient name loop precedes the claim's TRN.
			if segment.Element(0) == entityPatient {
				patientLast, patientFirst = segment.Element(2), segment.Element(3)
			}
		case segmentTRN:
			if segment.Element(0) != traceTypeCurrentTransaction {
				continue
			}
			if seenHL && !isClaimLevel(levelCode) {
				continue
			}
			closeClaim()
			current = &ClaimStatusEntry{
				ControlNumber:    segment.Element(1),
				PatientLastName:  patientLast,
				PatientFirstName: patientFirst,
			}
			patientLast, patientFirst = "", ""
		case segmentSTC:
			if current == nil {
				continue
			}
			response.readStatus(current, segment)
		case segmentREF:
			if current != nil && segment.Element(0) == refQualifierPayerClaimNumber && current.PayerClaimNumber == "" {
				current.PayerClaimNumber = segment.Element(1)
			}
		case segmentDTP:
			if current != nil && segment.Element(0) == dateQualifierServiceDate && current.ServiceDate == nil {
				current.ServiceDate = parseDate(segment.Element(2))
			}
		case x12.SegmentSE:
			closeClaim()
		}
	}
	closeClaim()

	response.TotalClaims = len(response.Claims)
	for _, claim := range response.Claims {
		if claim.IsRejected() {
			response.HasRejections = true
			break
		}
	}
	return response
}

// readStatus fills the entry from an STC. Only the first STC of a claim
// loop sets its status; later ones are kept as additional categories.
func (r *StatusResponse) readStatus(entry *ClaimStatusEntry, stc x12.Segment) {
	categoryCode := stc.SubElement(0, 0)
	if entry.CategoryCode != "" {
		if categoryCode != "" {
			entry.AdditionalCategoryCodes = append(entry.AdditionalCategoryCodes, categoryCode)
		}
		return
	}

	category, known := codes.LookupStatusCategory(categoryCode)
	if !known && categoryCode != "" {
		r.UnknownCodes = appendUnique(r.UnknownCodes, categoryCode)
	}
	entry.CategoryCode = category.Code
	entry.StatusCode = stc.SubElement(0, 1)
	entry.EntityCode = stc.SubElement(0, 2)
	entry.Status = category.Status
	entry.Description = category.Description
	entry.StatusDate = parseDate(stc.Element(1))
	entry.ChargeAmount = parseNullAmount(stc.Element(3))
	entry.PaymentAmount = parseNullAmount(stc.Element(4))
}

// parseDate reads a D8 date or the start of an RD8 range.
func parseDate(value string) *time.Time {
	if len(value) < len(x12.DateFormatCCYYMMDD) {
		return nil
	}
	parsed, err := time.Parse(x12.DateFormatCCYYMMDD, value[:len(x12.DateFormatCCYYMMDD)])
	if err != nil {
		return nil
	}
	return &parsed
}
