package session

import (
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixengine/internal/fix"
	"fixengine/internal/network"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func TestOrderHandlerRejectsPreLogonOrder(t *testing.T) {
	h := NewOrderHandler("SERVER", newTestLogger().WithField("test", "t"))
	order := &fix.Message{
		Header: fix.Header{MsgType: fix.MsgTypeNewOrderSingle, SenderCompID: "C", TargetCompID: "S"},
		Body: &fix.NewOrderSingle{
			ClOrdID: "X", Symbol: fix.NewSymbol("IBM"), Side: fix.SideBuy,
			OrderQty: decimal.NewFromInt(10), OrdType: fix.OrdTypeMarket,
		},
	}
	responses, next := h.Handle(StatePending, inboundMessage{msg: order, arrivedAt: time.Now()})
	assert.Empty(t, responses)
	assert.Equal(t, StatePending, next)
}

func TestOrderHandlerLogonThenFill(t *testing.T) {
	h := NewOrderHandler("SERVER", newTestLogger().WithField("test", "t"))

	logon := &fix.Message{
		Header: fix.Header{MsgType: fix.MsgTypeLogon, SenderCompID: "CLIENT", TargetCompID: "SERVER"},
		Body:   &fix.Logon{EncryptMethod: 0, HeartBtInt: 30},
	}
	responses, next := h.Handle(StatePending, inboundMessage{msg: logon, arrivedAt: time.Now()})
	require.Len(t, responses, 1)
	assert.Equal(t, StateAuthenticated, next)
	assert.Equal(t, fix.MsgTypeLogon, responses[0].msg.Header.MsgType)

	order := &fix.Message{
		Header: fix.Header{MsgType: fix.MsgTypeNewOrderSingle, SenderCompID: "CLIENT", TargetCompID: "SERVER"},
		Body: &fix.NewOrderSingle{
			ClOrdID: "ORD-1", Symbol: fix.NewSymbol("IBM"), Side: fix.SideBuy,
			OrderQty: decimal.NewFromInt(100), OrdType: fix.OrdTypeLimit, Price: decimal.NewFromInt(50),
		},
	}
	responses, next = h.Handle(StateAuthenticated, inboundMessage{msg: order, arrivedAt: time.Now()})
	require.Len(t, responses, 1)
	assert.Equal(t, StateAuthenticated, next)
	er, ok := responses[0].msg.Body.(*fix.ExecutionReport)
	require.True(t, ok)
	assert.Equal(t, fix.OrdStatusNew, er.OrdStatus)
	assert.Equal(t, byte('0'), er.ExecType)
	assert.True(t, er.LeavesQty.Equal(decimal.NewFromInt(100)))
	assert.True(t, er.CumQty.IsZero())
	assert.True(t, er.AvgPx.IsZero())
	assert.NotEmpty(t, er.TransactTime)
	assert.Equal(t, "Order Accepted", er.Text)
}

func TestOrderHandlerLogoutTerminates(t *testing.T) {
	h := NewOrderHandler("SERVER", newTestLogger().WithField("test", "t"))
	logout := &fix.Message{
		Header: fix.Header{MsgType: fix.MsgTypeLogout, SenderCompID: "CLIENT", TargetCompID: "SERVER"},
		Body:   &fix.Logout{},
	}
	responses, next := h.Handle(StateAuthenticated, inboundMessage{msg: logout, arrivedAt: time.Now()})
	assert.Empty(t, responses)
	assert.Equal(t, StateTerminating, next)
}

func TestAdmissionLimitsConcurrency(t *testing.T) {
	a := NewAdmission(2)
	assert.True(t, a.TryAcquire())
	assert.True(t, a.TryAcquire())
	assert.False(t, a.TryAcquire())
	a.Release()
	assert.True(t, a.TryAcquire())
}

func TestGlobalStatsMinMax(t *testing.T) {
	RecordOrderLatency(500)
	RecordOrderLatency(100)
	RecordOrderLatency(900)
	snap := Snapshot()
	assert.GreaterOrEqual(t, snap.OrdersProcessed, uint64(3))
	assert.LessOrEqual(t, snap.MinLatencyMicros, uint64(100))
	assert.GreaterOrEqual(t, snap.MaxLatencyMicros, uint64(900))
}

func TestSessionEndToEndLogonAndOrder(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	log := newTestLogger()
	handler := NewOrderHandler("SERVER", log.WithField("test", "e2e"))
	admission := NewAdmission(1)
	require.True(t, admission.TryAcquire())

	srvMsgConn := network.NewMessageConn(serverConn, nil, nil)
	sess := New(srvMsgConn, handler, admission, log)

	done := make(chan struct{})
	go func() {
		sess.Run()
		close(done)
	}()

	cliMsgConn := network.NewMessageConn(clientConn, nil, nil)

	logonMsg := &fix.Message{
		Header: fix.Header{BeginString: fix.BeginString, MsgType: fix.MsgTypeLogon, SenderCompID: "CLIENT", TargetCompID: "SERVER", MsgSeqNum: 1, SendingTime: "20260801-00:00:00"},
		Body:   &fix.Logon{EncryptMethod: 0, HeartBtInt: 30},
	}
	require.NoError(t, cliMsgConn.WriteMessage(logonMsg))

	reply, err := cliMsgConn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, fix.MsgTypeLogon, reply.Header.MsgType)

	logoutMsg := &fix.Message{
		Header: fix.Header{BeginString: fix.BeginString, MsgType: fix.MsgTypeLogout, SenderCompID: "CLIENT", TargetCompID: "SERVER", MsgSeqNum: 2, SendingTime: "20260801-00:00:01"},
		Body:   &fix.Logout{},
	}
	require.NoError(t, cliMsgConn.WriteMessage(logoutMsg))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not terminate after Logout")
	}
}
