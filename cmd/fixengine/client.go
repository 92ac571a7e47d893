package main

import (
	"context"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fixengine/internal/config"
	"fixengine/internal/fix"
	"fixengine/internal/network"
	"fixengine/internal/pkg/logger"
)

var (
	clientServerAddr string
	clientSymbol     string
	clientQty        string
	clientPrice      string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "connect once, log on, send an order, print the execution report",
	Run: func(cmd *cobra.Command, args []string) {
		runClient()
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.Flags().StringVar(&clientServerAddr, "server", "", "server address (overrides config)")
	clientCmd.Flags().StringVar(&clientSymbol, "symbol", "IBM", "order symbol")
	clientCmd.Flags().StringVar(&clientQty, "qty", "100", "order quantity")
	clientCmd.Flags().StringVar(&clientPrice, "price", "", "limit price; empty for a market order")
}

func runClient() {
	cfg, err := config.NewConfigLoader("", "FIXSIM").LoadConfig()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	addr := cfg.Client.ServerAddr
	if clientServerAddr != "" {
		addr = clientServerAddr
	}

	conn, err := network.Connect(context.Background(), addr, 5*time.Second)
	if err != nil {
		logger.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	msgConn := network.NewMessageConn(conn, nil, nil)
	seq := 0

	send := func(msgType string, body interface{}) *fix.Message {
		seq++
		msg := &fix.Message{
			Header: fix.Header{
				BeginString:  fix.BeginString,
				MsgType:      msgType,
				SenderCompID: cfg.Client.SenderCompID,
				TargetCompID: cfg.Client.TargetCompID,
				MsgSeqNum:    seq,
				SendingTime:  strconv.FormatInt(time.Now().UnixMilli(), 10),
			},
			Body: body,
		}
		if err := msgConn.WriteMessage(msg); err != nil {
			logger.Fatalf("write: %v", err)
		}
		return msg
	}

	resetSeqNum := true
	send(fix.MsgTypeLogon, &fix.Logon{EncryptMethod: 0, HeartBtInt: 30, ResetSeqNumFlag: &resetSeqNum})
	logonReply, err := msgConn.ReadMessage()
	if err != nil {
		logger.Fatalf("read logon reply: %v", err)
	}
	pterm.Success.Printfln("logged on: %s", logonReply.Header.MsgType)

	qty, err := decimal.NewFromString(clientQty)
	if err != nil {
		logger.Fatalf("invalid qty: %v", err)
	}

	order := &fix.NewOrderSingle{
		ClOrdID:  "ORD-1",
		Symbol:   fix.NewSymbol(clientSymbol),
		Side:     fix.SideBuy,
		OrderQty: qty,
		OrdType:  fix.OrdTypeMarket,
	}
	if clientPrice != "" {
		px, err := decimal.NewFromString(clientPrice)
		if err != nil {
			logger.Fatalf("invalid price: %v", err)
		}
		order.OrdType = fix.OrdTypeLimit
		order.Price = px
	}
	send(fix.MsgTypeNewOrderSingle, order)

	execReply, err := msgConn.ReadMessage()
	if err != nil {
		logger.Fatalf("read execution report: %v", err)
	}
	er, ok := execReply.Body.(*fix.ExecutionReport)
	if !ok {
		logger.Fatalf("unexpected reply body type %T", execReply.Body)
	}
	pterm.DefaultBasicText.Printfln(
		"execution report: order_id=%s status=%s cum_qty=%s avg_px=%s",
		er.OrderID, string(byte(er.OrdStatus)), er.CumQty.String(), er.AvgPx.String(),
	)
}
