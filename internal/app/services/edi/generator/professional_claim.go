// Package generator encodes stored claims as X12 837P professional claim
// transactions.
package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/x12"

	"github.com/shopspring/decimal"
)

const (
	TransactionSetCode     = "837"
	ImplementationVersion  = "005010X222A1"
	InterchangeVersion     = "00501"
	FunctionalIDHealthCare = "HC"
)

// controlNumberWidth is the fixed width of ISA13, shared by GS06, ST02 and
// CLM01.
const controlNumberWidth = 9

const (
	hlBillingProvider = "20"
	hlSubscriber      = "22"
	hlPatient         = "23"

	qualifierPrincipalDiagnosis = "ABK"
	qualifierOtherDiagnosis     = "ABF"

	defaultPlaceOfService = "11"
)

// BillingProvider identifies the organization the claim is billed under.
type BillingProvider struct {
	Name         string
	NPI          string
	TaxID        string
	TaxonomyCode string
	Address      models.Address
}

// SubmissionContext carries everything the encoding needs beyond the claim
// itself. ControlNumber must be freshly minted for every submission attempt.
type SubmissionContext struct {
	SenderID             string
	SenderIDQualifier    string
	ReceiverID           string
	ReceiverIDQualifier  string
	SubmitterName        string
	SubmitterContactName string
	SubmitterPhone       string
	ReceiverName         string
	PayerEDIID           string
	UsageIndicator       string
	ControlNumber        string
	BillingProvider      BillingProvider
	Now                  time.Time
}

// Result is a generated interchange together with the values that were
// checked against it.
type Result struct {
	Content      string
	SegmentCount int
	TotalCharge  decimal.Decimal
}

// Generate encodes claim as a single 837P interchange. The encoded text is
// tokenized again before it is returned and the trailer count and claim
// total are verified against what was actually written.
func Generate(claim *models.Claim, sc SubmissionContext) (*Result, error) {
	if err := checkClaim(claim, sc); err != nil {
		return nil, err
	}

	now := sc.Now
	if now.IsZero() {
		now = time.Now()
	}
	d := x12.DefaultDelimiters
	w := x12.NewWriter(d)
	clean := func(value string) string {
		return x12.SanitizeValue(value, d)
	}

	totalCharge := claim.ServiceLineTotal()
	if !claim.TotalCharge.IsZero() && !claim.TotalCharge.Equal(totalCharge) {
		return nil, exceptions.ErrGenerationInvariant(fmt.Sprintf(
			"claim %s total charge %s does not match service line sum %s",
			claim.ID, claim.TotalCharge.StringFixed(2), totalCharge.StringFixed(2),
		))
	}

	controlNumber := x12.ZeroPadded(sc.ControlNumber, controlNumberWidth)
	usage := sc.UsageIndicator
	if usage == "" {
		usage = "P"
	}

	w.WriteISA(x12.InterchangeHeader{
		AuthInfoQualifier:     "00",
		SecurityInfoQualifier: "00",
		SenderIDQualifier:     valueOr(sc.SenderIDQualifier, "ZZ"),
		SenderID:              clean(sc.SenderID),
		ReceiverIDQualifier:   valueOr(sc.ReceiverIDQualifier, "ZZ"),
		ReceiverID:            clean(sc.ReceiverID),
		Date:                  now.Format(x12.DateFormatYYMMDD),
		Time:                  now.Format(x12.TimeFormatHHMM),
		Version:               InterchangeVersion,
		ControlNumber:         controlNumber,
		AckRequested:          "1",
		UsageIndicator:        usage,
	})
	w.Write(x12.SegmentGS, FunctionalIDHealthCare, clean(sc.SenderID), clean(sc.ReceiverID),
		now.Format(x12.DateFormatCCYYMMDD), now.Format(x12.TimeFormatHHMM), controlNumber, "X", ImplementationVersion)

	transactionStart := w.Len()
	w.Write(x12.SegmentST, TransactionSetCode, controlNumber, ImplementationVersion)
	w.Write("BHT", "0019", "00", controlNumber, now.Format(x12.DateFormatCCYYMMDD), now.Format(x12.TimeFormatHHMM), "CH")

	// 1000A submitter, 1000B receiver
	w.Write("NM1", "41", "2", clean(sc.SubmitterName), "", "", "", "", "46", clean(sc.SenderID))
	w.Write("PER", "IC", clean(sc.SubmitterContactName), "TE", digitsOnly(sc.SubmitterPhone))
	w.Write("NM1", "40", "2", clean(sc.ReceiverName), "", "", "", "", "46", clean(sc.ReceiverID))

	writeBillingProvider(w, sc.BillingProvider, clean)
	writeSubscriber(w, claim, sc, clean)
	if !claim.IsPatientSubscriber() {
		writePatient(w, claim, clean)
	}
	writeClaim(w, claim, controlNumber, totalCharge, clean)

	segmentCount := w.Len() - transactionStart + 1
	w.Write(x12.SegmentSE, strconv.Itoa(segmentCount), controlNumber)
	w.Write(x12.SegmentGE, "1", controlNumber)
	w.Write(x12.SegmentIEA, "1", controlNumber)

	content := w.String()
	if err := verify(content, segmentCount, totalCharge); err != nil {
		return nil, err
	}

	return &Result{
		Content:      content,
		SegmentCount: segmentCount,
		TotalCharge:  totalCharge,
	}, nil
}

// 2000A / 2010AA
func writeBillingProvider(w *x12.Writer, bp BillingProvider, clean func(string) string) {
	w.Write("HL", "1", "", hlBillingProvider, "1")
	if bp.TaxonomyCode != "" {
		w.Write("PRV", "BI", "PXC", clean(bp.TaxonomyCode))
	}
	w.Write("NM1", "85", "2", clean(bp.Name), "", "", "", "", "XX", digitsOnly(bp.NPI))
	writeAddress(w, bp.Address, clean)
	w.Write("REF", "EI", digitsOnly(bp.TaxID))
}

// 2000B / 2010BA / 2010BB
func writeSubscriber(w *x12.Writer, claim *models.Claim, sc SubmissionContext, clean func(string) string) {
	self := claim.IsPatientSubscriber()
	childCode := "1"
	relationship := ""
	if self {
		childCode = "0"
		relationship = "18"
	}
	w.Write("HL", "2", "1", hlSubscriber, childCode)
	w.Write("SBR", "P", relationship, clean(claim.GroupNumber), "", "", "", "", "", "CI")

	subscriber := claim.SubscriberPerson()
	w.Write("NM1", "IL", "1", clean(subscriber.LastName), clean(subscriber.FirstName), "", "", "", "MI", clean(claim.MemberID))
	if self || subscriber.Address.Line1 != "" {
		writeAddress(w, subscriber.Address, clean)
	}
	if self || !subscriber.DateOfBirth.IsZero() {
		writeDemographics(w, subscriber)
	}

	payerID := sc.PayerEDIID
	if payerID == "" {
		payerID = claim.Payer.EDIPayerID
	}
	w.Write("NM1", "PR", "2", clean(claim.Payer.Name), "", "", "", "", "PI", clean(payerID))
}

// 2000C / 2010CA, only when the patient is not the subscriber.
func writePatient(w *x12.Writer, claim *models.Claim, clean func(string) string) {
	w.Write("HL", "3", "2", hlPatient, "0")
	w.Write("PAT", patientRelationshipCode(claim.SubscriberRelationship))
	w.Write("NM1", "QC", "1", clean(claim.Patient.LastName), clean(claim.Patient.FirstName))
	writeAddress(w, claim.Patient.Address, clean)
	writeDemographics(w, claim.Patient)
}

// 2300 / 2310B / 2400
func writeClaim(w *x12.Writer, claim *models.Claim, controlNumber string, totalCharge decimal.Decimal, clean func(string) string) {
	placeOfService := valueOr(claim.PlaceOfService, defaultPlaceOfService)
	w.Write("CLM", controlNumber, FormatAmount(totalCharge), "", "",
		w.Composite(placeOfService, "B", "1"), "Y", "A", "Y", "Y")

	diagnoses := claim.OrderedDiagnoses()
	hi := make([]string, 0, len(diagnoses))
	for i, diagnosis := range diagnoses {
		qualifier := qualifierOtherDiagnosis
		if i == 0 {
			qualifier = qualifierPrincipalDiagnosis
		}
		hi = append(hi, w.Composite(qualifier, NormalizeDiagnosisCode(diagnosis.Code)))
	}
	w.Write("HI", hi...)

	if claim.RenderingProvider.NPI != "" {
		rp := claim.RenderingProvider
		w.Write("NM1", "82", "1", clean(rp.LastName), clean(rp.FirstName), "", "", "", "XX", digitsOnly(rp.NPI))
	}

	pointerIndex := diagnosisPointerIndex(claim.Diagnoses, diagnoses)
	for i, line := range claim.ServiceLines {
		w.Write("LX", strconv.Itoa(i+1))

		pointers := make([]string, 0, len(line.DiagnosisPointers))
		for _, pointer := range line.DiagnosisPointers {
			pointers = append(pointers, strconv.Itoa(pointerIndex[pointer]))
		}
		units := line.Units
		if units <= 0 {
			units = 1
		}
		w.Write("SV1",
			w.Composite("HC", clean(line.ProcedureCode), clean(line.Modifier)),
			FormatAmount(line.ChargeAmount),
			"UN",
			strconv.Itoa(units),
			"", "",
			w.Composite(pointers...),
		)
		w.Write("DTP", "472", "D8", line.DateOfService.Format(x12.DateFormatCCYYMMDD))
	}
}

func writeAddress(w *x12.Writer, address models.Address, clean func(string) string) {
	w.Write("N3", clean(address.Line1), clean(address.Line2))
	w.Write("N4", clean(address.City), clean(address.State), digitsOnly(address.PostalCode))
}

func writeDemographics(w *x12.Writer, person models.Person) {
	if person.DateOfBirth.IsZero() {
		return
	}
	w.Write("DMG", "D8", person.DateOfBirth.Format(x12.DateFormatCCYYMMDD), genderCode(person.Gender))
}

// verify re-reads the generated text the way a receiver would.
func verify(content string, segmentCount int, totalCharge decimal.Decimal) error {
	segments, err := x12.Tokenize(content)
	if err != nil {
		return exceptions.ErrGenerationInvariant(err.Error())
	}

	actual := x12.TransactionSegmentCount(segments)
	se, _ := x12.First(segments, x12.SegmentSE)
	if actual != segmentCount || se.Element(x12.SEIndexSegmentCount) != strconv.Itoa(actual) {
		return exceptions.ErrGenerationInvariant(fmt.Sprintf(
			"transaction trailer declares %s segments, found %d", se.Element(x12.SEIndexSegmentCount), actual,
		))
	}

	clm, ok := x12.First(segments, "CLM")
	if !ok {
		return exceptions.ErrGenerationInvariant("claim segment missing")
	}
	lineSum := decimal.Zero
	for _, sv1 := range x12.FindAll(segments, "SV1") {
		charge, err := decimal.NewFromString(sv1.Element(1))
		if err != nil {
			return exceptions.ErrGenerationInvariant(fmt.Sprintf("service line charge %q is not numeric", sv1.Element(1)))
		}
		lineSum = lineSum.Add(charge)
	}
	header, err := decimal.NewFromString(clm.Element(1))
	if err != nil || !header.Equal(lineSum) || !header.Equal(totalCharge) {
		return exceptions.ErrGenerationInvariant(fmt.Sprintf(
			"claim total %s does not match service line sum %s", clm.Element(1), FormatAmount(lineSum),
		))
	}
	return nil
}

func checkClaim(claim *models.Claim, sc SubmissionContext) error {
	switch {
	case claim == nil:
		return exceptions.ErrGenerationInvariant("claim is nil")
	case sc.ControlNumber == "":
		return exceptions.ErrGenerationInvariant("control number is required")
	case len(sc.ControlNumber) > controlNumberWidth:
		return exceptions.ErrGenerationInvariant(fmt.Sprintf(
			"control number %s is longer than %d digits", sc.ControlNumber, controlNumberWidth,
		))
	case strings.Trim(sc.ControlNumber, "0123456789") != "":
		return exceptions.ErrGenerationInvariant(fmt.Sprintf("control number %s is not numeric", sc.ControlNumber))
	case len(claim.Diagnoses) == 0:
		return exceptions.ErrGenerationInvariant(fmt.Sprintf("claim %s has no diagnoses", claim.ID))
	case len(claim.ServiceLines) == 0:
		return exceptions.ErrGenerationInvariant(fmt.Sprintf("claim %s has no service lines", claim.ID))
	}
	for i, line := range claim.ServiceLines {
		for _, pointer := range line.DiagnosisPointers {
			if pointer < 1 || pointer > len(claim.Diagnoses) {
				return exceptions.ErrGenerationInvariant(fmt.Sprintf(
					"claim %s service line %d points at diagnosis %d of %d", claim.ID, i+1, pointer, len(claim.Diagnoses),
				))
			}
		}
	}
	return nil
}

// diagnosisPointerIndex maps a 1-based pointer into the stored diagnosis
// list to its 1-based position in the emitted HI segment.
func diagnosisPointerIndex(stored, emitted []models.Diagnosis) map[int]int {
	index := make(map[int]int, len(stored))
	used := make(map[int]bool, len(emitted))
	for i, diagnosis := range stored {
		for j, candidate := range emitted {
			if !used[j] && candidate == diagnosis {
				index[i+1] = j + 1
				used[j] = true
				break
			}
		}
	}
	return index
}

// NormalizeDiagnosisCode strips the decimal point and any other punctuation
// from an ICD-10 code.
func NormalizeDiagnosisCode(code string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		}
		return -1
	}, code)
}

// FormatAmount renders a monetary amount with two decimals.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func patientRelationshipCode(relationship string) string {
	switch relationship {
	case models.SubscriberRelationshipSpouse:
		return "01"
	case models.SubscriberRelationshipChild:
		return "19"
	}
	return "G8"
}

func genderCode(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "m", "male":
		return "M"
	case "f", "female":
		return "F"
	}
	return "U"
}

func digitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
