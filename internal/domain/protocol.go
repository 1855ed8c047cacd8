package domain

import "strings"

var protocolIDs = map[string]int{
	"J1850VPW":     1,
	"J1850PWM":     2,
	"ISO9141":      3,
	"ISO14230":     4,
	"CAN":          5,
	"ISO15765":     6,
	"SCI_A_ENGINE": 7,
	"SCI_A_TRANS":  8,
	"SCI_B_ENGINE": 9,
	"SCI_B_TRANS":  10,
}

var filterTypeIDs = map[string]int{
	"PASS":         1,
	"BLOCK":        2,
	"FLOW_CONTROL": 3,
}

var statusIDs = map[string]int{
	"STATUS_NOERROR":            0,
	"ERR_NOT_SUPPORTED":         1,
	"ERR_INVALID_CHANNEL_ID":    2,
	"ERR_INVALID_PROTOCOL_ID":   3,
	"ERR_NULL_PARAMETER":        4,
	"ERR_INVALID_IOCTL_VALUE":   5,
	"ERR_INVALID_FLAGS":         6,
	"ERR_FAILED":                7,
	"ERR_DEVICE_NOT_CONNECTED":  8,
	"ERR_TIMEOUT":               9,
	"ERR_INVALID_MSG":           10,
	"ERR_INVALID_TIME_INTERVAL": 11,
	"ERR_EXCEEDED_LIMIT":        12,
	"ERR_INVALID_MSG_ID":        13,
	"ERR_DEVICE_IN_USE":         14,
	"ERR_INVALID_IOCTL_ID":      15,
	"ERR_BUFFER_EMPTY":          16,
	"ERR_BUFFER_FULL":           17,
	"ERR_BUFFER_OVERFLOW":       18,
	"ERR_PIN_INVALID":           19,
	"ERR_CHANNEL_IN_USE":        20,
	"ERR_MSG_PROTOCOL_ID":       21,
	"ERR_INVALID_FILTER_ID":     22,
	"ERR_NO_FLOW_CONTROL":       23,
	"ERR_NOT_UNIQUE":            24,
	"ERR_INVALID_BAUDRATE":      25,
	"ERR_INVALID_DEVICE_ID":     26,
}

var ioctlIDs = map[string]int{
	"GET_CONFIG":                         1,
	"SET_CONFIG":                         2,
	"READ_VBATT":                         3,
	"FIVE_BAUD_INIT":                     4,
	"FAST_INIT":                          5,
	"CLEAR_TX_BUFFER":                    7,
	"CLEAR_RX_BUFFER":                    8,
	"CLEAR_PERIODIC_MSGS":                9,
	"CLEAR_MSG_FILTERS":                  10,
	"CLEAR_FUNCT_MSG_LOOKUP_TABLE":       11,
	"ADD_TO_FUNCT_MSG_LOOKUP_TABLE":      12,
	"DELETE_FROM_FUNCT_MSG_LOOKUP_TABLE": 13,
	"READ_PROG_VOLTAGE":                  14,
}

var configParamIDs = map[string]int{
	"DATA_RATE":        0x01,
	"LOOPBACK":         0x03,
	"NODE_ADDRESS":     0x04,
	"NETWORK_LINE":     0x05,
	"P1_MIN":           0x06,
	"P1_MAX":           0x07,
	"P2_MIN":           0x08,
	"P2_MAX":           0x09,
	"P3_MIN":           0x0A,
	"P3_MAX":           0x0B,
	"P4_MIN":           0x0C,
	"P4_MAX":           0x0D,
	"W1":               0x0E,
	"W2":               0x0F,
	"W3":               0x10,
	"W4":               0x11,
	"W5":               0x12,
	"TIDLE":            0x13,
	"TINIL":            0x14,
	"TWUP":             0x15,
	"PARITY":           0x16,
	"BIT_SAMPLE_POINT": 0x17,
	"SYNC_JUMP_WIDTH":  0x18,
	"ISO15765_BS":      0x1E,
	"ISO15765_STMIN":   0x1F,
	"BS_TX":            0x22,
	"STMIN_TX":         0x23,
	"ISO15765_WFT_MAX": 0x25,
}

// ProtocolID returns the J2534 protocol id for a protocol name.
func ProtocolID(name string) (int, bool) {
	id, ok := protocolIDs[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

func ProtocolName(id int) (string, bool) {
	return nameFor(protocolIDs, id)
}

// FilterTypeID accepts PASS, PASS_FILTER and their BLOCK / FLOW_CONTROL
// counterparts.
func FilterTypeID(name string) (int, bool) {
	normalized := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(name)), "_FILTER")
	id, ok := filterTypeIDs[normalized]
	return id, ok
}

func FilterTypeName(id int) (string, bool) {
	return nameFor(filterTypeIDs, id)
}

func StatusID(name string) (int, bool) {
	id, ok := statusIDs[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

func IoctlID(name string) (int, bool) {
	id, ok := ioctlIDs[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

func ConfigParamID(name string) (int, bool) {
	id, ok := configParamIDs[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

func nameFor(table map[string]int, id int) (string, bool) {
	for name, candidate := range table {
		if candidate == id {
			return name, true
		}
	}
	return "", false
}
