package rubric

// Band is the coarse HSC-style achievement level derived from a percentage.
type Band int

const (
	Band1 Band = 1
	Band2 Band = 2
	Band3 Band = 3
	Band4 Band = 4
	Band5 Band = 5
	Band6 Band = 6
)

// bandCuts maps each band to its minimum percentage. A percentage exactly
// on a boundary resolves to the higher band.
var bandCuts = []struct {
	band Band
	min  int
}{
	{Band6, 90},
	{Band5, 80},
	{Band4, 70},
	{Band3, 50},
	{Band2, 30},
	{Band1, 0},
}

// BandFor maps a rounded percentage onto the six-band scale.
func BandFor(percentage int) Band {
	if percentage < 0 {
		percentage = 0
	}
	for _, cut := range bandCuts {
		if percentage >= cut.min {
			return cut.band
		}
	}
	return Band1
}

// Descriptor returns the standard label used for a band in student reports.
func (b Band) Descriptor() string {
	switch b {
	case Band6:
		return "Exceptional"
	case Band5:
		return "Strong"
	case Band4:
		return "Sound"
	case Band3:
		return "Developing"
	case Band2:
		return "Basic"
	default:
		return "Beginning"
	}
}
