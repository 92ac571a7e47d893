package fix

import "github.com/shopspring/decimal"

// Body tags shared across message types.
const (
	tagClOrdID     = 11
	tagOrderID     = 37
	tagExecID      = 17
	tagExecType    = 150
	tagOrdStatus   = 39
	tagSymbol      = 55
	tagSide        = 54
	tagOrderQty    = 38
	tagOrdType     = 40
	tagPrice       = 44
	tagTimeInForce = 59
	tagLeavesQty   = 151
	tagCumQty      = 14
	tagAvgPx       = 6
	tagLastQty     = 32
	tagLastPx      = 31
	tagText        = 58
	tagEncryptMethod = 98
	tagHeartBtInt  = 108
	tagTestReqID   = 112
	tagBeginSeqNo  = 7
	tagEndSeqNo    = 16
	tagNewSeqNo    = 36
	tagGapFillFlag = 123
	tagResetSeqNumFlag = 141
	tagTransactTime    = 60
)

// NewOrderSingle is MsgType D.
type NewOrderSingle struct {
	ClOrdID     string
	Symbol      Symbol
	Side        Side
	OrderQty    decimal.Decimal
	OrdType     OrdType
	Price       decimal.Decimal // zero value for market orders
	TimeInForce TimeInForce
}

// ExecutionReport is MsgType 8.
type ExecutionReport struct {
	OrderID      string
	ClOrdID      string
	ExecID       string
	ExecType     byte
	OrdStatus    OrdStatus
	Symbol       Symbol
	Side         Side
	LeavesQty    decimal.Decimal
	CumQty       decimal.Decimal
	AvgPx        decimal.Decimal
	LastQty      decimal.Decimal
	LastPx       decimal.Decimal
	TransactTime string // tag 60, decimal epoch-ms
	Text         string
}

// Logon is MsgType A.
type Logon struct {
	EncryptMethod   int
	HeartBtInt      int
	ResetSeqNumFlag *bool // tag 141, optional tri-state Y/N
}

// Logout is MsgType 5.
type Logout struct {
	Text string
}

// Heartbeat is MsgType 0.
type Heartbeat struct {
	TestReqID string // empty unless answering a TestRequest
}

// TestRequest is MsgType 1.
type TestRequest struct {
	TestReqID string
}

// ResendRequest is MsgType 2.
type ResendRequest struct {
	BeginSeqNo int
	EndSeqNo   int
}

// SequenceReset is MsgType 4.
type SequenceReset struct {
	NewSeqNo   int
	GapFillFlag bool
}

// Message is a decoded FIX message: the common header plus one typed body.
// Body holds a pointer to one of the typed body structs above, matching
// Header.MsgType.
type Message struct {
	Header Header
	Body   interface{}
}
