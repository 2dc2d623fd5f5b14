package transport

import (
	"context"
	"testing"
)

func TestNewSerialDefaultsBaudRate(t *testing.T) {
	tr := NewSerial("/dev/ttyUSB0", 0)
	assertEqual(t, tr.baud, 38400)
}

func TestNewSerialKeepsExplicitBaudRate(t *testing.T) {
	tr := NewSerial("/dev/ttyUSB0", 9600)
	assertEqual(t, tr.baud, 9600)
}

func TestSerialWriteBeforeConnectErrors(t *testing.T) {
	tr := NewSerial("/dev/ttyUSB0", 0)
	err := tr.Write(context.Background(), []byte("0100\r"))
	assert(t, err != nil, "expected an error writing before Connect")
}

func TestSerialReadUntilBeforeConnectErrors(t *testing.T) {
	tr := NewSerial("/dev/ttyUSB0", 0)
	_, err := tr.ReadUntil(context.Background(), '>')
	assert(t, err != nil, "expected an error reading before Connect")
}

func TestSerialDisconnectWithoutConnectIsNoop(t *testing.T) {
	tr := NewSerial("/dev/ttyUSB0", 0)
	err := tr.Disconnect()
	assert(t, err == nil, "expected no error disconnecting an unopened serial port")
}
