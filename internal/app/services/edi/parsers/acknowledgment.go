package parsers

import (
	"claimsync-service/internal/app/services/edi/codes"
	"claimsync-service/internal/pkg/x12"
)

const (
	segmentAK1 = "AK1"
	segmentAK2 = "AK2"
	segmentIK3 = "IK3"
	segmentIK4 = "IK4"
	segmentIK5 = "IK5"
	segmentAK9 = "AK9"
)

// TransactionOutcome is one AK2..IK5 transaction set response.
type TransactionOutcome struct {
	TransactionSetCode string   `json:"transactionSetCode"`
	ControlNumber      string   `json:"controlNumber"`
	Code               string   `json:"code"`
	Accepted           bool     `json:"accepted"`
	Description        string   `json:"description"`
	ErrorCodes         []string `json:"errorCodes,omitempty"`
}

// Acknowledgment is a parsed 999. Accepted only says the submission was
// syntactically received, not that the payer accepted the claim.
type Acknowledgment struct {
	Envelope
	OriginalControlNumber string               `json:"originalControlNumber"`
	Accepted              bool                 `json:"accepted"`
	StatusCode            string               `json:"statusCode"`
	StatusDescription     string               `json:"statusDescription"`
	Transactions          []TransactionOutcome `json:"transactions"`
	ErrorCodes            []string             `json:"errorCodes"`
	UnknownCodes          []string             `json:"unknownCodes,omitempty"`
}

// IsReceived reports whether the group was accepted and, when the 999
// carries transaction set responses, at least one of them was individually
// accepted. A 999 with only AK9 is received when its group was accepted.
func (a *Acknowledgment) IsReceived() bool {
	if !a.Accepted {
		return false
	}
	if len(a.Transactions) == 0 {
		return true
	}
	for _, transaction := range a.Transactions {
		if transaction.Accepted {
			return true
		}
	}
	return false
}

func ParseAcknowledgment(content string) (*Acknowledgment, error) {
	segments, err := x12.Tokenize(content)
	if err != nil {
		return nil, err
	}
	return ReadAcknowledgment(segments), nil
}

func ReadAcknowledgment(segments []x12.Segment) *Acknowledgment {
	ack := &Acknowledgment{
		Envelope:     readEnvelope(segments),
		Transactions: []TransactionOutcome{},
		ErrorCodes:   []string{},
	}

	var (
		originalGroupControlNumber string
		current                    *TransactionOutcome
		lastTransactionCode        string
	)
	closeTransaction := func() {
		if current != nil {
			ack.Transactions = append(ack.Transactions, *current)
			current = nil
		}
	}

	for _, segment := range segments {
		switch segment.ID {
		case segmentAK1:
			originalGroupControlNumber = segment.Element(1)
		case segmentAK2:
			closeTransaction()
			current = &TransactionOutcome{
				TransactionSetCode: segment.Element(0),
				ControlNumber:      segment.Element(1),
			}
		case segmentIK3:
			ack.addError(current, segment.Element(3))
		case segmentIK4:
			ack.addError(current, segment.Element(2))
		case segmentIK5:
			code := segment.Element(0)
			lastTransactionCode = code
			if current == nil {
				current = &TransactionOutcome{}
			}
			current.Code = code
			current.Accepted, current.Description = ack.describe(code)
			for i := 1; i <= 5; i++ {
				ack.addError(current, segment.Element(i))
			}
			closeTransaction()
		case segmentAK9:
			ack.StatusCode = segment.Element(0)
			for i := 4; i <= 8; i++ {
				ack.addError(nil, segment.Element(i))
			}
		}
	}
	closeTransaction()

	// A 999 without a group trailer is judged by its last transaction.
	if ack.StatusCode == "" {
		ack.StatusCode = lastTransactionCode
	}
	ack.Accepted, ack.StatusDescription = ack.describe(ack.StatusCode)
	ack.OriginalControlNumber = firstNonEmpty(originalGroupControlNumber, ack.GroupControlNumber, ack.ISAControlNumber)
	return ack
}

func (a *Acknowledgment) describe(code string) (bool, string) {
	outcome, known := codes.ParseAckOutcome(code)
	if !known && code != "" {
		a.UnknownCodes = appendUnique(a.UnknownCodes, code)
	}
	return outcome.IsAccepted(), codes.DescribeAckCode(code)
}

func (a *Acknowledgment) addError(transaction *TransactionOutcome, code string) {
	if code == "" {
		return
	}
	a.ErrorCodes = append(a.ErrorCodes, code)
	if transaction != nil {
		transaction.ErrorCodes = append(transaction.ErrorCodes, code)
	}
}
