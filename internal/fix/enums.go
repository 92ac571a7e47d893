package fix

// Side is tag 54.
type Side byte

const (
	SideBuy  Side = '1'
	SideSell Side = '2'
)

// OrdType is tag 40.
type OrdType byte

const (
	OrdTypeMarket OrdType = '1'
	OrdTypeLimit  OrdType = '2'
)

// TimeInForce is tag 59.
type TimeInForce byte

const (
	TIFDay TimeInForce = '0'
	TIFGTC TimeInForce = '1'
	TIFIOC TimeInForce = '3'
	TIFFOK TimeInForce = '4'
	TIFGTD TimeInForce = '6'
)

// OrdStatus is tag 39.
type OrdStatus byte

const (
	OrdStatusNew             OrdStatus = '0'
	OrdStatusPartiallyFilled OrdStatus = '1'
	OrdStatusFilled          OrdStatus = '2'
	OrdStatusCancelled       OrdStatus = '4'
	OrdStatusPendingReplace  OrdStatus = '5'
	OrdStatusPendingCancel   OrdStatus = '6'
	OrdStatusRejected        OrdStatus = '8'
	OrdStatusExpired         OrdStatus = 'C'
)

// MsgType values, tag 35.
const (
	MsgTypeLogon           = "A"
	MsgTypeNewOrderSingle  = "D"
	MsgTypeExecutionReport = "8"
	MsgTypeLogout          = "5"
	MsgTypeHeartbeat       = "0"
	MsgTypeTestRequest     = "1"
	MsgTypeResendRequest   = "2"
	MsgTypeSequenceReset   = "4"
)
