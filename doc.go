// Package elm327 provides communication with a vehicle's OBD-II system
// through an ELM327-based adapter over serial, TCP or any other
// byte-oriented transport.
//
// Using this library and an ELM327-based adapter you can communicate with
// a car's on-board diagnostics system: read live sensor data, scan and
// clear trouble codes, read readiness status, and decode the VIN.
//
// All assumptions this library makes are based on the official Elm
// Electronics datasheet of the ELM327 IC and on SAE J1979's OBD-II PID
// table.
//
// You'll only need to know about three kinds of types to use this
// library: transport.Transport (the byte-oriented channel to the
// adapter), Config (connection settings), and Client (the connection
// itself, once established).
//
// The Client type represents an active connection to an ELM327 adapter.
// You pick a transport, build a Config, and Connect:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/obdkit/elm327"
//	    "github.com/obdkit/elm327/transport"
//	)
//
//	func main() {
//	    tr := transport.NewSerial("/dev/ttyUSB0", 0)
//	    client := elm327.NewClient(tr, elm327.DefaultConfig())
//
//	    info, err := client.Connect(context.Background())
//	    if err != nil {
//	        fmt.Println("failed to connect:", err)
//	        return
//	    }
//
//	    fmt.Println("VIN:", info.VIN)
//	}
//
// Once connected, the function you will use the most is Client.SendCommand,
// which accepts a CommandId, sends the matching request, waits for a
// response, parses and decodes it, and gives back a TypedValue. For a list
// of PIDs to request, see the catalogue in catalogue.go (Lookup, ByWire,
// Mode01PIDs).
//
// For periodically updated sensor data, use Client.RequestPIDs for a single
// batched read or Client.ContinuousUpdates for a paced stream of readings.
package elm327
