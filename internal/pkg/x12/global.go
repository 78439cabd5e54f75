package x12

const (
	SegmentISA = "ISA"
	SegmentIEA = "IEA"
	SegmentGS  = "GS"
	SegmentGE  = "GE"
	SegmentST  = "ST"
	SegmentSE  = "SE"
)

const (
	DefaultSegmentTerminator   = '~'
	DefaultElementSeparator    = '*'
	DefaultComponentSeparator  = ':'
	DefaultRepetitionSeparator = '^'
)

// ISA is the only fixed-width segment: 106 characters including its
// terminator.
const (
	isaByteCount                = 106
	isaElementSeparatorIndex    = 3
	isaRepetitionSeparatorIndex = 82
	isaComponentSeparatorIndex  = 104
	isaSegmentTerminatorIndex   = 105
)

// isaLen* are the widths of the ISA elements (no more, no less).
const (
	isaLenAuthInfoQualifier     = 2
	isaLenAuthInfo              = 10
	isaLenSecurityInfoQualifier = 2
	isaLenSecurityInfo          = 10
	isaLenSenderIDQualifier     = 2
	isaLenSenderID              = 15
	isaLenReceiverIDQualifier   = 2
	isaLenReceiverID            = 15
	isaLenDate                  = 6
	isaLenTime                  = 4
	isaLenVersion               = 5
	isaLenControlNumber         = 9
	isaLenAckRequested          = 1
	isaLenUsageIndicator        = 1
)

// Element positions inside Segment.Elements (zero based, segment ID excluded).
const (
	ISAIndexSenderID      = 5
	ISAIndexReceiverID    = 7
	ISAIndexDate          = 8
	ISAIndexTime          = 9
	ISAIndexControlNumber = 12
	ISAIndexUsage         = 14
)

const (
	GSIndexFunctionalIdentifierCode = iota
	GSIndexSenderCode
	GSIndexReceiverCode
	GSIndexDate
	GSIndexTime
	GSIndexControlNumber
	GSIndexResponsibleAgencyCode
	GSIndexVersion
)

const (
	STIndexTransactionSetCode = iota
	STIndexControlNumber
	STIndexVersion
)

const (
	SEIndexSegmentCount = iota
	SEIndexControlNumber
)

const (
	DateFormatCCYYMMDD = "20060102"
	DateFormatYYMMDD   = "060102"
	TimeFormatHHMM     = "1504"
)
