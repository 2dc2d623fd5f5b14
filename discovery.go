package elm327

import "fmt"

// walkPIDSupportBitmap performs chained supported-PID discovery for one
// service mode ("01", "06", or "09"): send
// the base getter, interpret its 32-bit bitmap as PIDs base+1..base+32, and
// repeat at the next base while the bitmap's last bit is set. Results union
// across every ECU that answered. sendFn is the LineSession's
// send-and-parse-messages primitive, injected so this has no I/O of its own.
func walkPIDSupportBitmap(mode string, sendFn func(wire string) ([]Message, error)) (map[CommandId]bool, error) {
	result := make(map[CommandId]bool)

	for base := 0; ; base += 0x20 {
		wire := fmt.Sprintf("%s%02X", mode, base)

		messages, err := sendFn(wire)
		if err != nil {
			return nil, err
		}
		if len(messages) == 0 {
			break
		}

		chain := false

		for _, m := range messages {
			payload := m.Payload()
			if len(payload) < 5 {
				continue
			}
			bitmap := payload[1:5]

			for k := 0; k < 32; k++ {
				byteIdx := k / 8
				bitIdx := 7 - (k % 8)
				if bitmap[byteIdx]&(1<<uint(bitIdx)) == 0 {
					continue
				}
				pidNum := base + k + 1
				result[CommandId(fmt.Sprintf("%s%02X", mode, pidNum))] = true
			}

			if bitmap[3]&0x01 != 0 {
				chain = true
			}
		}

		if !chain {
			break
		}
	}

	return result, nil
}

// discoverSupportedPIDs runs walkPIDSupportBitmap over every service mode
// that carries a chained bitmap getter (Mode 01 live data, Mode 06
// monitoring, Mode 09 vehicle info), unioning the results.
func discoverSupportedPIDs(sendFn func(wire string) ([]Message, error)) (map[CommandId]bool, error) {
	result := make(map[CommandId]bool)

	for _, mode := range []string{"01", "06", "09"} {
		found, err := walkPIDSupportBitmap(mode, sendFn)
		if err != nil {
			return nil, err
		}
		for id := range found {
			result[id] = true
		}
	}

	return result, nil
}
