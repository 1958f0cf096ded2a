package ivaltauth

const maskPrefix = "****"

// MaskMobileNumber renders a phone number for display, keeping only the
// last four characters. Inputs shorter than four characters collapse to
// the bare mask.
func MaskMobileNumber(mobile string) string {
	if len(mobile) < 4 {
		return maskPrefix
	}
	return maskPrefix + mobile[len(mobile)-4:]
}
