package session

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fixengine/internal/fix"
)

// OrderHandler is the default Handler: it completes the Logon exchange,
// acknowledges every NewOrderSingle with a New-status ExecutionReport
// (nothing is executed), and rejects NewOrderSingle received before Logon.
type OrderHandler struct {
	SenderCompID string
	TargetCompID string
	log          *logrus.Entry

	seqNum int
}

// NewOrderHandler builds a handler that identifies itself as senderCompID
// to peers whose TargetCompID it echoes.
func NewOrderHandler(senderCompID string, log *logrus.Entry) *OrderHandler {
	return &OrderHandler{SenderCompID: senderCompID, log: log, seqNum: 1}
}

func (h *OrderHandler) Handle(state State, in inboundMessage) ([]outboundMessage, State) {
	msg := in.msg

	switch body := msg.Body.(type) {
	case *fix.Logon:
		h.TargetCompID = msg.Header.SenderCompID
		resp := h.logonReply(body)
		return []outboundMessage{{msg: resp}}, StateAuthenticated

	case *fix.NewOrderSingle:
		if state != StateAuthenticated {
			h.log.WithField("cl_ord_id", body.ClOrdID).Warn("NewOrderSingle rejected: session not authenticated")
			return nil, state
		}
		resp := h.fill(body)
		return []outboundMessage{{msg: resp}}, state

	case *fix.Logout:
		return nil, StateTerminating

	case *fix.TestRequest:
		hb := h.wrap(fix.MsgTypeHeartbeat, &fix.Heartbeat{TestReqID: body.TestReqID})
		return []outboundMessage{{msg: hb}}, state

	default:
		// Heartbeat, ResendRequest, SequenceReset are decodable but not
		// answered by this simulator.
		return nil, state
	}
}

func (h *OrderHandler) logonReply(_ *fix.Logon) *fix.Message {
	resetSeqNum := false
	return h.wrap(fix.MsgTypeLogon, &fix.Logon{
		EncryptMethod:   0,
		HeartBtInt:      30,
		ResetSeqNumFlag: &resetSeqNum,
	})
}

// fill never matches the order; it synthesizes the New acknowledgement
// every NewOrderSingle gets on receipt. leaves_qty covers the full order
// quantity and cum_qty/avg_px stay zero since nothing has executed.
func (h *OrderHandler) fill(order *fix.NewOrderSingle) *fix.Message {
	now := epochMillisString()
	return h.wrap(fix.MsgTypeExecutionReport, &fix.ExecutionReport{
		OrderID:       now,
		ClOrdID:       order.ClOrdID,
		ExecID:        "EID_" + now,
		ExecType:      '0', // New
		OrdStatus:     fix.OrdStatusNew,
		Symbol:        order.Symbol,
		Side:          order.Side,
		LeavesQty:     order.OrderQty,
		CumQty:        decimal.Zero,
		AvgPx:         decimal.Zero,
		TransactTime:  now,
		Text:          "Order Accepted",
	})
}

func (h *OrderHandler) wrap(msgType string, body interface{}) *fix.Message {
	h.seqNum++
	return &fix.Message{
		Header: fix.Header{
			BeginString:  fix.BeginString,
			MsgType:      msgType,
			SenderCompID: h.SenderCompID,
			TargetCompID: h.TargetCompID,
			MsgSeqNum:    h.seqNum,
			SendingTime:  epochMillisString(),
		},
		Body: body,
	}
}

func epochMillisString() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
