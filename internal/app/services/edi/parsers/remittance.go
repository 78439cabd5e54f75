package parsers

import (
	"fmt"
	"strings"
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/edi/codes"
	"claimsync-service/internal/pkg/x12"

	"github.com/shopspring/decimal"
)

const (
	segmentBPR = "BPR"
	segmentN1  = "N1"
	segmentCLP = "CLP"
	segmentCAS = "CAS"
	segmentSVC = "SVC"
	segmentDTM = "DTM"
	segmentPLB = "PLB"

	entityPayer = "PR"
	entityPayee = "PE"

	bprIndexPaymentDate = 15

	casMaxTriplets = 6
	plbMaxPairs    = 6
)

// PaymentInfo is read from BPR and TRN.
type PaymentInfo struct {
	TransactionHandlingCode string          `json:"transactionHandlingCode"`
	TotalPaymentAmount      decimal.Decimal `json:"totalPaymentAmount"`
	CreditDebitFlag         string          `json:"creditDebitFlag"`
	PaymentMethod           string          `json:"paymentMethod"`
	PaymentDate             *time.Time      `json:"paymentDate,omitempty"`
	TraceNumber             string          `json:"traceNumber"`
	PayerIdentifier         string          `json:"payerIdentifier,omitempty"`
}

// Adjustment is one reason/amount triplet of a CAS segment.
type Adjustment struct {
	GroupCode  string          `json:"groupCode"`
	ReasonCode string          `json:"reasonCode"`
	Amount     decimal.Decimal `json:"amount"`
	Quantity   string          `json:"quantity,omitempty"`
}

func (a Adjustment) Group() codes.AdjustmentGroup {
	return codes.ParseAdjustmentGroup(a.GroupCode)
}

func (a Adjustment) String() string {
	return a.GroupCode + "-" + a.ReasonCode
}

// ServicePayment is one SVC loop.
type ServicePayment struct {
	ProcedureQualifier string          `json:"procedureQualifier"`
	ProcedureCode      string          `json:"procedureCode"`
	Modifiers          []string        `json:"modifiers,omitempty"`
	ChargeAmount       decimal.Decimal `json:"chargeAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	Units              string          `json:"units,omitempty"`
	ServiceDate        *time.Time      `json:"serviceDate,omitempty"`
	Adjustments        []Adjustment    `json:"adjustments"`
}

// ClaimPayment is one CLP loop.
type ClaimPayment struct {
	ControlNumber               string             `json:"controlNumber"`
	StatusCode                  string             `json:"statusCode"`
	StatusDescription           string             `json:"statusDescription"`
	ChargeAmount                decimal.Decimal    `json:"chargeAmount"`
	PaidAmount                  decimal.Decimal    `json:"paidAmount"`
	PatientResponsibilityAmount decimal.Decimal    `json:"patientResponsibilityAmount"`
	FilingIndicator             string             `json:"filingIndicator,omitempty"`
	PayerClaimNumber            string             `json:"payerClaimNumber,omitempty"`
	ClaimStatus                 models.ClaimStatus `json:"claimStatus"`
	PatientLastName             string             `json:"patientLastName,omitempty"`
	PatientFirstName            string             `json:"patientFirstName,omitempty"`
	Adjustments                 []Adjustment       `json:"adjustments"`
	ServiceLines                []ServicePayment   `json:"serviceLines"`
}

// IsPaid is informational; ClaimStatus is decided by PaidAmount alone.
func (c ClaimPayment) IsPaid() bool {
	status, _ := codes.ParseClaimPaymentStatus(c.StatusCode)
	return status.IsPaid()
}

// DenialCodes lists the contractual and patient responsibility adjustments
// of the claim and its service lines, in order of appearance.
func (c ClaimPayment) DenialCodes() []string {
	var found []string
	collect := func(adjustments []Adjustment) {
		for _, adjustment := range adjustments {
			if adjustment.Group().ExplainsDenial() {
				found = appendUnique(found, adjustment.String())
			}
		}
	}
	collect(c.Adjustments)
	for _, line := range c.ServiceLines {
		collect(line.Adjustments)
	}
	return found
}

// DenialReason is a readable explanation built from DenialCodes.
func (c ClaimPayment) DenialReason() string {
	denialCodes := c.DenialCodes()
	if len(denialCodes) == 0 {
		return fmt.Sprintf("Denied by payer: %s", codes.DescribeClaimPaymentStatus(c.StatusCode))
	}
	return fmt.Sprintf("Denied by payer: %s", strings.Join(denialCodes, ", "))
}

// ProviderAdjustment is one reason/amount pair of a PLB segment.
type ProviderAdjustment struct {
	ProviderIdentifier string          `json:"providerIdentifier"`
	FiscalPeriodDate   *time.Time      `json:"fiscalPeriodDate,omitempty"`
	ReasonCode         string          `json:"reasonCode"`
	ReferenceID        string          `json:"referenceId,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
}

// Remittance is a parsed 835.
type Remittance struct {
	Envelope
	Payment                    PaymentInfo          `json:"payment"`
	PayerName                  string               `json:"payerName"`
	PayeeName                  string               `json:"payeeName"`
	Claims                     []ClaimPayment       `json:"claims"`
	ProviderAdjustments        []ProviderAdjustment `json:"providerAdjustments"`
	TotalCharges               decimal.Decimal      `json:"totalCharges"`
	TotalPaid                  decimal.Decimal      `json:"totalPaid"`
	TotalPatientResponsibility decimal.Decimal      `json:"totalPatientResponsibility"`
	ClaimCount                 int                  `json:"claimCount"`
	UnknownCodes               []string             `json:"unknownCodes,omitempty"`
}

// ClaimStatusForPaidAmount is the single rule deciding a remitted claim's
// status.
func ClaimStatusForPaidAmount(paid decimal.Decimal) models.ClaimStatus {
	if paid.GreaterThan(decimal.Zero) {
		return models.ClaimStatusPaid
	}
	return models.ClaimStatusDenied
}

func ParseRemittance(content string) (*Remittance, error) {
	segments, err := x12.Tokenize(content)
	if err != nil {
		return nil, err
	}
	return ReadRemittance(segments), nil
}

func ReadRemittance(segments []x12.Segment) *Remittance {
	remittance := &Remittance{
		Envelope:                   readEnvelope(segments),
		Claims:                     []ClaimPayment{},
		ProviderAdjustments:        []ProviderAdjustment{},
		TotalCharges:               decimal.Zero,
		TotalPaid:                  decimal.Zero,
		TotalPatientResponsibility: decimal.Zero,
	}

	var (
		claim   *ClaimPayment
		service *ServicePayment
	)
	closeService := func() {
		if claim != nil && service != nil {
			claim.ServiceLines = append(claim.ServiceLines, *service)
		}
		service = nil
	}
	closeClaim := func() {
		closeService()
		if claim != nil {
			remittance.Claims = append(remittance.Claims, *claim)
		}
		claim = nil
	}

	for _, segment := range segments {
		switch segment.ID {
		case segmentBPR:
			remittance.Payment.TransactionHandlingCode = segment.Element(0)
			remittance.Payment.TotalPaymentAmount = parseAmount(segment.Element(1))
			remittance.Payment.CreditDebitFlag = segment.Element(2)
			remittance.Payment.PaymentMethod = segment.Element(3)
			remittance.Payment.PaymentDate = parseDate(segment.Element(bprIndexPaymentDate))
		case segmentTRN:
			if remittance.Payment.TraceNumber == "" {
				remittance.Payment.TraceNumber = segment.Element(1)
				remittance.Payment.PayerIdentifier = segment.Element(2)
			}
		case segmentN1:
			switch segment.Element(0) {
			case entityPayer:
				remittance.PayerName = segment.Element(1)
			case entityPayee:
				remittance.PayeeName = segment.Element(1)
			}
		case segmentCLP:
			closeClaim()
			claim = remittance.readClaim(segment)
		case segmentNM1:
			if claim != nil && segment.Element(0) == entityPatient {
				claim.PatientLastName, claim.PatientFirstName = segment.Element(2), segment.Element(3)
			}
		case segmentCAS:
			adjustments := readAdjustments(segment)
			switch {
			case service != nil:
				service.Adjustments = append(service.Adjustments, adjustments...)
			case claim != nil:
				claim.Adjustments = append(claim.Adjustments, adjustments...)
			}
			for _, adjustment := range adjustments {
				if adjustment.Group() == codes.UnknownAdjustmentGroup {
					remittance.UnknownCodes = appendUnique(remittance.UnknownCodes, adjustment.GroupCode)
				}
			}
		case segmentSVC:
			if claim == nil {
				continue
			}
			closeService()
			service = readService(segment)
		case segmentDTM:
			if service != nil && segment.Element(0) == dateQualifierServiceDate && service.ServiceDate == nil {
				service.ServiceDate = parseDate(segment.Element(1))
			}
		case segmentPLB:
			closeClaim()
			remittance.ProviderAdjustments = append(remittance.ProviderAdjustments, readProviderAdjustments(segment)...)
		case x12.SegmentSE:
			closeClaim()
		}
	}
	closeClaim()

	for _, c := range remittance.Claims {
		remittance.TotalCharges = remittance.TotalCharges.Add(c.ChargeAmount)
		remittance.TotalPaid = remittance.TotalPaid.Add(c.PaidAmount)
		remittance.TotalPatientResponsibility = remittance.TotalPatientResponsibility.Add(c.PatientResponsibilityAmount)
	}
	remittance.ClaimCount = len(remittance.Claims)
	return remittance
}

func (r *Remittance) readClaim(clp x12.Segment) *ClaimPayment {
	statusCode := clp.Element(1)
	if _, known := codes.ParseClaimPaymentStatus(statusCode); !known && statusCode != "" {
		r.UnknownCodes = appendUnique(r.UnknownCodes, statusCode)
	}
	paid := parseAmount(clp.Element(3))
	return &ClaimPayment{
		ControlNumber:               clp.Element(0),
		StatusCode:                  statusCode,
		StatusDescription:           codes.DescribeClaimPaymentStatus(statusCode),
		ChargeAmount:                parseAmount(clp.Element(2)),
		PaidAmount:                  paid,
		PatientResponsibilityAmount: parseAmount(clp.Element(4)),
		FilingIndicator:             clp.Element(5),
		PayerClaimNumber:            clp.Element(6),
		ClaimStatus:                 ClaimStatusForPaidAmount(paid),
		Adjustments:                 []Adjustment{},
		ServiceLines:                []ServicePayment{},
	}
}

// readAdjustments expands CAS*group*reason*amount*qty*reason*amount*qty...
func readAdjustments(cas x12.Segment) []Adjustment {
	group := cas.Element(0)
	var adjustments []Adjustment
	for i := 0; i < casMaxTriplets; i++ {
		offset := 1 + i*3
		reason := cas.Element(offset)
		if reason == "" {
			continue
		}
		adjustments = append(adjustments, Adjustment{
			GroupCode:  group,
			ReasonCode: reason,
			Amount:     parseAmount(cas.Element(offset + 1)),
			Quantity:   cas.Element(offset + 2),
		})
	}
	return adjustments
}

func readService(svc x12.Segment) *ServicePayment {
	procedure := svc.Components(0)
	service := &ServicePayment{
		ChargeAmount: parseAmount(svc.Element(1)),
		PaidAmount:   parseAmount(svc.Element(2)),
		Units:        svc.Element(4),
		Adjustments:  []Adjustment{},
	}
	if len(procedure) > 0 {
		service.ProcedureQualifier = procedure[0]
	}
	if len(procedure) > 1 {
		service.ProcedureCode = procedure[1]
	}
	for _, modifier := range procedure[min(len(procedure), 2):] {
		if modifier != "" {
			service.Modifiers = append(service.Modifiers, modifier)
		}
	}
	return service
}

// readProviderAdjustments expands PLB*provider*date*reason:ref*amount...
func readProviderAdjustments(plb x12.Segment) []ProviderAdjustment {
	provider := plb.Element(0)
	fiscalDate := parseDate(plb.Element(1))
	var adjustments []ProviderAdjustment
	for i := 0; i < plbMaxPairs; i++ {
		offset := 2 + i*2
		if plb.Element(offset) == "" {
			continue
		}
		adjustments = append(adjustments, ProviderAdjustment{
			ProviderIdentifier: provider,
			FiscalPeriodDate:   fiscalDate,
			ReasonCode:         plb.SubElement(offset, 0),
			ReferenceID:        plb.SubElement(offset, 1),
			Amount:             parseAmount(plb.Element(offset + 1)),
		})
	}
	return adjustments
}
