package fix

// Header carries the standard FIX 4.2 header fields common to every
// message, in the wire order the codec always emits: 8, 9, 35, 49, 56, 34,
// 52.
type Header struct {
	BeginString  string // tag 8, always "FIX.4.2"
	BodyLength   int    // tag 9, computed on encode
	MsgType      string // tag 35
	SenderCompID string // tag 49
	TargetCompID string // tag 56
	MsgSeqNum    int    // tag 34
	SendingTime  string // tag 52, decimal epoch-ms (simplified in place of FIX UTCTimestamp)
}

// BeginString is the only supported value of tag 8 for this codec.
const BeginString = "FIX.4.2"

const (
	tagBeginString  = 8
	tagBodyLength   = 9
	tagMsgType      = 35
	tagSenderCompID = 49
	tagTargetCompID = 56
	tagMsgSeqNum    = 34
	tagSendingTime  = 52
	tagCheckSum     = 10
)

func parseHeader(m *fieldMap) (Header, error) {
	var h Header
	var err error

	if h.BeginString, err = m.requireString(tagBeginString); err != nil {
		return h, err
	}
	if h.BeginString != BeginString {
		return h, errInvalidValue(tagBeginString, h.BeginString)
	}
	bl, err := m.requireString(tagBodyLength)
	if err != nil {
		return h, err
	}
	if h.BodyLength, err = parseInt(tagBodyLength, bl); err != nil {
		return h, err
	}
	if h.MsgType, err = m.requireString(tagMsgType); err != nil {
		return h, err
	}
	if h.SenderCompID, err = m.requireString(tagSenderCompID); err != nil {
		return h, err
	}
	if h.TargetCompID, err = m.requireString(tagTargetCompID); err != nil {
		return h, err
	}
	seq, err := m.requireString(tagMsgSeqNum)
	if err != nil {
		return h, err
	}
	if h.MsgSeqNum, err = parseInt(tagMsgSeqNum, seq); err != nil {
		return h, err
	}
	if h.SendingTime, err = m.requireString(tagSendingTime); err != nil {
		return h, err
	}
	return h, nil
}
