package elm327

import "testing"

func TestDecoderIDStringNames(t *testing.T) {
	scenarios := map[DecoderID]string{
		DecodeNone:     "none",
		DecodeRPM:      "rpm",
		DecodeTempC:    "temp_c",
		DecodeStatus:   "status",
		DecodeDTCList:  "dtc_list",
		DecodeUAS:      "uas",
		DecodePIDSupportBitmap: "pid_support_bitmap",
	}

	for id, want := range scenarios {
		assertEqual(t, id.String(), want)
	}
}

func TestDecoderIDStringUnknown(t *testing.T) {
	assertEqual(t, DecoderID(9999).String(), "unknown")
}
