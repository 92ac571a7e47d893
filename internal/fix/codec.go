package fix

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Decode scans buf for one complete FIX message, decodes it, and reports
// how many leading bytes of buf were consumed. When buf holds no complete
// message yet, it returns (nil, 0, nil): callers append more bytes and
// retry. Leading bytes before the first "8=" are silently skipped and
// counted as consumed, tolerating garbage between messages on the wire.
//
// Once a complete frame has been located, the returned consumed count is
// always valid even on error: a malformed or unsupported message is still
// a fully-framed span of buf, and callers can skip past it and keep
// reading rather than treating the whole connection as broken.
func Decode(buf []byte) (*Message, int, error) {
	start, end, ok, err := scanFrame(buf)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, nil
	}

	decodeStart := time.Now()
	defer func() { recordDecode(time.Since(decodeStart).Nanoseconds()) }()

	msgBuf := buf[start:end]

	var m fieldMap
	if err := parseFields(&m, msgBuf); err != nil {
		return nil, end, err
	}

	csStr, err := m.requireString(tagCheckSum)
	if err != nil {
		return nil, end, err
	}
	csVal, err := parseInt(tagCheckSum, csStr)
	if err != nil {
		return nil, end, errInvalidValue(tagCheckSum, csStr)
	}

	// Checksum covers every byte from the start of the message up to (but
	// not including) the "10=" tag itself.
	csTagOffset := checksumTagOffset(msgBuf)
	want := int(checksum(msgBuf[:csTagOffset]))
	if want != csVal {
		return nil, end, errChecksumMismatch(want, csVal)
	}

	header, err := parseHeader(&m)
	if err != nil {
		return nil, end, err
	}

	body, err := decodeBody(header.MsgType, &m)
	if err != nil {
		return nil, end, err
	}

	return &Message{Header: header, Body: body}, end, nil
}

// checksumTagOffset finds the byte offset of the "10=" tag within msgBuf,
// which parseFields has already validated as a well-formed trailing field.
func checksumTagOffset(msgBuf []byte) int {
	for i := len(msgBuf) - 1; i >= 0; i-- {
		if msgBuf[i] == '1' && i+1 < len(msgBuf) && msgBuf[i+1] == '0' && i+2 < len(msgBuf) && msgBuf[i+2] == '=' {
			if i == 0 || msgBuf[i-1] == SOH {
				return i
			}
		}
	}
	return 0
}

func decodeBody(msgType string, m *fieldMap) (interface{}, error) {
	switch msgType {
	case MsgTypeLogon:
		return decodeLogon(m)
	case MsgTypeNewOrderSingle:
		return decodeNewOrderSingle(m)
	case MsgTypeExecutionReport:
		return decodeExecutionReport(m)
	case MsgTypeLogout:
		return decodeLogout(m)
	case MsgTypeHeartbeat:
		return decodeHeartbeat(m)
	case MsgTypeTestRequest:
		return decodeTestRequest(m)
	case MsgTypeResendRequest:
		return decodeResendRequest(m)
	case MsgTypeSequenceReset:
		return decodeSequenceReset(m)
	default:
		return nil, errUnsupportedType(msgType)
	}
}

func decodeLogon(m *fieldMap) (*Logon, error) {
	em, err := m.requireString(tagEncryptMethod)
	if err != nil {
		return nil, err
	}
	hb, err := m.requireString(tagHeartBtInt)
	if err != nil {
		return nil, err
	}
	emv, err := parseInt(tagEncryptMethod, em)
	if err != nil {
		return nil, err
	}
	hbv, err := parseInt(tagHeartBtInt, hb)
	if err != nil {
		return nil, err
	}
	logon := &Logon{EncryptMethod: emv, HeartBtInt: hbv}
	if rs, ok := m.getString(tagResetSeqNumFlag); ok {
		v := rs == "Y"
		logon.ResetSeqNumFlag = &v
	}
	return logon, nil
}

func decodeNewOrderSingle(m *fieldMap) (*NewOrderSingle, error) {
	clOrdID, err := m.requireString(tagClOrdID)
	if err != nil {
		return nil, err
	}
	symStr, err := m.requireString(tagSymbol)
	if err != nil {
		return nil, err
	}
	sideStr, err := m.requireString(tagSide)
	if err != nil {
		return nil, err
	}
	qtyStr, err := m.requireString(tagOrderQty)
	if err != nil {
		return nil, err
	}
	qty, err := decimal.NewFromString(qtyStr)
	if err != nil {
		return nil, &Error{Kind: KindParseDecimal, Tag: tagOrderQty, Value: qtyStr, Cause: err}
	}
	ordTypeStr, err := m.requireString(tagOrdType)
	if err != nil {
		return nil, err
	}
	n := &NewOrderSingle{
		ClOrdID:  clOrdID,
		Symbol:   NewSymbol(symStr),
		Side:     Side(sideStr[0]),
		OrderQty: qty,
		OrdType:  OrdType(ordTypeStr[0]),
	}
	if n.OrdType == OrdTypeLimit {
		pxStr, err := m.requireString(tagPrice)
		if err != nil {
			return nil, err
		}
		px, err := decimal.NewFromString(pxStr)
		if err != nil {
			return nil, &Error{Kind: KindParseDecimal, Tag: tagPrice, Value: pxStr, Cause: err}
		}
		n.Price = px
	}
	if tifStr, ok := m.getString(tagTimeInForce); ok {
		n.TimeInForce = TimeInForce(tifStr[0])
	} else {
		n.TimeInForce = TIFDay
	}
	return n, nil
}

func decodeExecutionReport(m *fieldMap) (*ExecutionReport, error) {
	orderID, err := m.requireString(tagOrderID)
	if err != nil {
		return nil, err
	}
	clOrdID, err := m.requireString(tagClOrdID)
	if err != nil {
		return nil, err
	}
	execID, err := m.requireString(tagExecID)
	if err != nil {
		return nil, err
	}
	execTypeStr, err := m.requireString(tagExecType)
	if err != nil {
		return nil, err
	}
	ordStatusStr, err := m.requireString(tagOrdStatus)
	if err != nil {
		return nil, err
	}
	symStr, err := m.requireString(tagSymbol)
	if err != nil {
		return nil, err
	}
	sideStr, err := m.requireString(tagSide)
	if err != nil {
		return nil, err
	}
	leaves, err := requireDecimal(m, tagLeavesQty)
	if err != nil {
		return nil, err
	}
	cum, err := requireDecimal(m, tagCumQty)
	if err != nil {
		return nil, err
	}
	avgPx, err := requireDecimal(m, tagAvgPx)
	if err != nil {
		return nil, err
	}
	transactTime, err := m.requireString(tagTransactTime)
	if err != nil {
		return nil, err
	}
	e := &ExecutionReport{
		OrderID:      orderID,
		ClOrdID:      clOrdID,
		ExecID:       execID,
		ExecType:     execTypeStr[0],
		OrdStatus:    OrdStatus(ordStatusStr[0]),
		Symbol:       NewSymbol(symStr),
		Side:         Side(sideStr[0]),
		LeavesQty:    leaves,
		CumQty:       cum,
		AvgPx:        avgPx,
		TransactTime: transactTime,
	}
	if v, ok := m.get(tagLastQty); ok {
		e.LastQty, err = decimal.NewFromString(string(v))
		if err != nil {
			return nil, &Error{Kind: KindParseDecimal, Tag: tagLastQty, Value: string(v), Cause: err}
		}
	}
	if v, ok := m.get(tagLastPx); ok {
		e.LastPx, err = decimal.NewFromString(string(v))
		if err != nil {
			return nil, &Error{Kind: KindParseDecimal, Tag: tagLastPx, Value: string(v), Cause: err}
		}
	}
	if v, ok := m.getString(tagText); ok {
		e.Text = v
	}
	return e, nil
}

func requireDecimal(m *fieldMap, tag int) (decimal.Decimal, error) {
	s, err := m.requireString(tag)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &Error{Kind: KindParseDecimal, Tag: tag, Value: s, Cause: err}
	}
	return d, nil
}

func decodeLogout(m *fieldMap) (*Logout, error) {
	text, _ := m.getString(tagText)
	return &Logout{Text: text}, nil
}

func decodeHeartbeat(m *fieldMap) (*Heartbeat, error) {
	id, _ := m.getString(tagTestReqID)
	return &Heartbeat{TestReqID: id}, nil
}

func decodeTestRequest(m *fieldMap) (*TestRequest, error) {
	id, err := m.requireString(tagTestReqID)
	if err != nil {
		return nil, err
	}
	return &TestRequest{TestReqID: id}, nil
}

func decodeResendRequest(m *fieldMap) (*ResendRequest, error) {
	beginStr, err := m.requireString(tagBeginSeqNo)
	if err != nil {
		return nil, err
	}
	endStr, err := m.requireString(tagEndSeqNo)
	if err != nil {
		return nil, err
	}
	begin, err := parseInt(tagBeginSeqNo, beginStr)
	if err != nil {
		return nil, err
	}
	end, err := parseInt(tagEndSeqNo, endStr)
	if err != nil {
		return nil, err
	}
	return &ResendRequest{BeginSeqNo: begin, EndSeqNo: end}, nil
}

func decodeSequenceReset(m *fieldMap) (*SequenceReset, error) {
	newSeqStr, err := m.requireString(tagNewSeqNo)
	if err != nil {
		return nil, err
	}
	newSeq, err := parseInt(tagNewSeqNo, newSeqStr)
	if err != nil {
		return nil, err
	}
	sr := &SequenceReset{NewSeqNo: newSeq}
	if gf, ok := m.getString(tagGapFillFlag); ok {
		sr.GapFillFlag = gf == "Y"
	}
	return sr, nil
}

// Encode renders msg onto the wire format, appending to dst and returning
// the result. Header order is always 8, 9, 35, 49, 56, 34, 52, followed by
// the body fields, then the trailing checksum field 10.
func Encode(dst []byte, msg *Message) ([]byte, error) {
	encodeStart := time.Now()
	defer func() { recordEncode(time.Since(encodeStart).Nanoseconds()) }()

	bodyBuf := make([]byte, 0, 256)
	bodyBuf = appendField(bodyBuf, tagMsgType, msg.Header.MsgType)
	bodyBuf = appendField(bodyBuf, tagSenderCompID, msg.Header.SenderCompID)
	bodyBuf = appendField(bodyBuf, tagTargetCompID, msg.Header.TargetCompID)
	bodyBuf = appendField(bodyBuf, tagMsgSeqNum, strconv.Itoa(msg.Header.MsgSeqNum))
	bodyBuf = appendField(bodyBuf, tagSendingTime, msg.Header.SendingTime)

	var err error
	bodyBuf, err = encodeBody(bodyBuf, msg.Body)
	if err != nil {
		return dst, err
	}

	bodyLen := len(bodyBuf)

	msgStart := len(dst)
	out := dst
	out = appendField(out, tagBeginString, BeginString)
	out = appendField(out, tagBodyLength, strconv.Itoa(bodyLen))
	out = append(out, bodyBuf...)
	sum := checksum(out[msgStart:])
	out = appendField(out, tagCheckSum, formatChecksum(sum))
	return out, nil
}

func encodeBody(dst []byte, body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case *Logon:
		dst = appendField(dst, tagEncryptMethod, strconv.Itoa(b.EncryptMethod))
		dst = appendField(dst, tagHeartBtInt, strconv.Itoa(b.HeartBtInt))
		if b.ResetSeqNumFlag != nil {
			dst = appendField(dst, tagResetSeqNumFlag, boolYN(*b.ResetSeqNumFlag))
		}
	case *NewOrderSingle:
		dst = appendField(dst, tagClOrdID, b.ClOrdID)
		dst = appendField(dst, tagSymbol, b.Symbol.String())
		dst = appendField(dst, tagSide, string(byte(b.Side)))
		dst = appendField(dst, tagOrderQty, b.OrderQty.String())
		dst = appendField(dst, tagOrdType, string(byte(b.OrdType)))
		if b.OrdType == OrdTypeLimit {
			dst = appendField(dst, tagPrice, b.Price.String())
		}
		dst = appendField(dst, tagTimeInForce, string(byte(b.TimeInForce)))
	case *ExecutionReport:
		dst = appendField(dst, tagOrderID, b.OrderID)
		dst = appendField(dst, tagClOrdID, b.ClOrdID)
		dst = appendField(dst, tagExecID, b.ExecID)
		dst = appendField(dst, tagExecType, string(b.ExecType))
		dst = appendField(dst, tagOrdStatus, string(byte(b.OrdStatus)))
		dst = appendField(dst, tagSymbol, b.Symbol.String())
		dst = appendField(dst, tagSide, string(byte(b.Side)))
		dst = appendField(dst, tagLeavesQty, b.LeavesQty.String())
		dst = appendField(dst, tagCumQty, b.CumQty.String())
		dst = appendField(dst, tagAvgPx, b.AvgPx.String())
		dst = appendField(dst, tagTransactTime, b.TransactTime)
		if !b.LastQty.IsZero() {
			dst = appendField(dst, tagLastQty, b.LastQty.String())
			dst = appendField(dst, tagLastPx, b.LastPx.String())
		}
		if b.Text != "" {
			dst = appendField(dst, tagText, b.Text)
		}
	case *Logout:
		if b.Text != "" {
			dst = appendField(dst, tagText, b.Text)
		}
	case *Heartbeat:
		if b.TestReqID != "" {
			dst = appendField(dst, tagTestReqID, b.TestReqID)
		}
	case *TestRequest:
		dst = appendField(dst, tagTestReqID, b.TestReqID)
	case *ResendRequest:
		dst = appendField(dst, tagBeginSeqNo, strconv.Itoa(b.BeginSeqNo))
		dst = appendField(dst, tagEndSeqNo, strconv.Itoa(b.EndSeqNo))
	case *SequenceReset:
		dst = appendField(dst, tagNewSeqNo, strconv.Itoa(b.NewSeqNo))
		if b.GapFillFlag {
			dst = appendField(dst, tagGapFillFlag, "Y")
		}
	default:
		return dst, errInvalidFormat("unknown body type")
	}
	return dst, nil
}
