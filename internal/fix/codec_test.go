package fix

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLogon() *Message {
	return &Message{
		Header: Header{
			BeginString:  BeginString,
			MsgType:      MsgTypeLogon,
			SenderCompID: "CLIENT1",
			TargetCompID: "SERVER",
			MsgSeqNum:    1,
			SendingTime:  "20260801-12:00:00",
		},
		Body: &Logon{EncryptMethod: 0, HeartBtInt: 30},
	}
}

func sampleNewOrderSingle() *Message {
	return &Message{
		Header: Header{
			BeginString:  BeginString,
			MsgType:      MsgTypeNewOrderSingle,
			SenderCompID: "CLIENT1",
			TargetCompID: "SERVER",
			MsgSeqNum:    2,
			SendingTime:  "20260801-12:00:01",
		},
		Body: &NewOrderSingle{
			ClOrdID:     "ORD-1",
			Symbol:      NewSymbol("IBM"),
			Side:        SideBuy,
			OrderQty:    decimal.NewFromInt(100),
			OrdType:     OrdTypeLimit,
			Price:       decimal.RequireFromString("150.25"),
			TimeInForce: TIFDay,
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []*Message{
		sampleLogon(),
		sampleNewOrderSingle(),
		{
			Header: Header{BeginString: BeginString, MsgType: MsgTypeExecutionReport, SenderCompID: "SERVER", TargetCompID: "CLIENT1", MsgSeqNum: 3, SendingTime: "20260801-12:00:02"},
			Body: &ExecutionReport{
				OrderID: "1", ClOrdID: "ORD-1", ExecID: "EXEC-1", ExecType: '0', OrdStatus: OrdStatusNew,
				Symbol: NewSymbol("IBM"), Side: SideBuy,
				LeavesQty: decimal.NewFromInt(100), CumQty: decimal.Zero, AvgPx: decimal.Zero,
				TransactTime: "1769904000000", Text: "Order Accepted",
			},
		},
		{
			Header: Header{BeginString: BeginString, MsgType: MsgTypeLogout, SenderCompID: "CLIENT1", TargetCompID: "SERVER", MsgSeqNum: 4, SendingTime: "20260801-12:00:03"},
			Body:   &Logout{Text: "done"},
		},
		{
			Header: Header{BeginString: BeginString, MsgType: MsgTypeHeartbeat, SenderCompID: "CLIENT1", TargetCompID: "SERVER", MsgSeqNum: 5, SendingTime: "20260801-12:00:04"},
			Body:   &Heartbeat{},
		},
		{
			Header: Header{BeginString: BeginString, MsgType: MsgTypeTestRequest, SenderCompID: "CLIENT1", TargetCompID: "SERVER", MsgSeqNum: 6, SendingTime: "20260801-12:00:05"},
			Body:   &TestRequest{TestReqID: "TR-1"},
		},
		{
			Header: Header{BeginString: BeginString, MsgType: MsgTypeResendRequest, SenderCompID: "CLIENT1", TargetCompID: "SERVER", MsgSeqNum: 7, SendingTime: "20260801-12:00:06"},
			Body:   &ResendRequest{BeginSeqNo: 1, EndSeqNo: 5},
		},
		{
			Header: Header{BeginString: BeginString, MsgType: MsgTypeSequenceReset, SenderCompID: "CLIENT1", TargetCompID: "SERVER", MsgSeqNum: 8, SendingTime: "20260801-12:00:07"},
			Body:   &SequenceReset{NewSeqNo: 10, GapFillFlag: true},
		},
	}

	for _, orig := range cases {
		buf, err := Encode(nil, orig)
		require.NoError(t, err)

		decoded, n, err := Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		require.NotNil(t, decoded)
		assert.Equal(t, orig.Header.MsgType, decoded.Header.MsgType)
		assert.Equal(t, orig.Header.SenderCompID, decoded.Header.SenderCompID)
		assert.Equal(t, orig.Header.TargetCompID, decoded.Header.TargetCompID)
		assert.Equal(t, orig.Header.MsgSeqNum, decoded.Header.MsgSeqNum)
	}
}

func TestDecodeIncompleteReturnsNil(t *testing.T) {
	buf, err := Encode(nil, sampleLogon())
	require.NoError(t, err)

	partial := buf[:len(buf)-5]
	msg, n, err := Decode(partial)
	assert.NoError(t, err)
	assert.Nil(t, msg)
	assert.Zero(t, n)
}

func TestDecodeSkipsLeadingGarbage(t *testing.T) {
	buf, err := Encode(nil, sampleLogon())
	require.NoError(t, err)

	withGarbage := append([]byte("garbage-bytes-before-message"), buf...)
	msg, n, err := Decode(withGarbage)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, len(withGarbage), n)
}

func TestDecodeChecksumMismatch(t *testing.T) {
	buf, err := Encode(nil, sampleLogon())
	require.NoError(t, err)

	// Corrupt the checksum's last digit.
	buf[len(buf)-2]++

	_, _, err = Decode(buf)
	require.Error(t, err)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindChecksumMismatch, fe.Kind)
}

func TestDecodeMissingRequiredField(t *testing.T) {
	// A Logon body missing HeartBtInt (108) is malformed, independent of
	// framing/checksum concerns which are covered elsewhere.
	var m fieldMap
	raw := []byte("98=0\x01")
	require.NoError(t, parseFields(&m, raw))

	_, err := decodeLogon(&m)
	require.Error(t, err)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindMissingField, fe.Kind)
	assert.Equal(t, tagHeartBtInt, fe.Tag)
}

func TestDecodeUnsupportedMsgType(t *testing.T) {
	m := sampleLogon()
	m.Header.MsgType = "Z"
	buf, err := Encode(nil, m)
	require.NoError(t, err)

	_, _, err = Decode(buf)
	require.Error(t, err)
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindUnsupportedMessageType, fe.Kind)
}

func TestMultipleMessagesInBuffer(t *testing.T) {
	b1, err := Encode(nil, sampleLogon())
	require.NoError(t, err)
	b2, err := Encode(nil, sampleNewOrderSingle())
	require.NoError(t, err)

	combined := append(append([]byte{}, b1...), b2...)

	msg1, n1, err := Decode(combined)
	require.NoError(t, err)
	require.NotNil(t, msg1)
	assert.Equal(t, MsgTypeLogon, msg1.Header.MsgType)

	msg2, n2, err := Decode(combined[n1:])
	require.NoError(t, err)
	require.NotNil(t, msg2)
	assert.Equal(t, MsgTypeNewOrderSingle, msg2.Header.MsgType)
	assert.Equal(t, len(combined), n1+n2)
}

func TestChecksumFormat(t *testing.T) {
	assert.Equal(t, "000", formatChecksum(0))
	assert.Equal(t, "007", formatChecksum(7))
	assert.Equal(t, "042", formatChecksum(42))
	assert.Equal(t, "255", formatChecksum(255))
}

func TestSymbolTruncationAndString(t *testing.T) {
	s := NewSymbol("AVERYLONGSYMBOLNAME")
	assert.LessOrEqual(t, len(s.String()), 16)
	assert.Equal(t, "AVERYLONGSYMBOLN", s.String())
	short := NewSymbol("IBM")
	assert.Equal(t, "IBM", short.String())
}

func TestSnapshotCounters(t *testing.T) {
	before := Snapshot()
	buf, err := Encode(nil, sampleLogon())
	require.NoError(t, err)
	_, _, err = Decode(buf)
	require.NoError(t, err)
	after := Snapshot()
	assert.Greater(t, after.EncodeCount, before.EncodeCount)
	assert.Greater(t, after.DecodeCount, before.DecodeCount)
}
