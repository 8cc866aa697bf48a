package thing

import (
	"strconv"
)

// ParseFloat turns a formally valid number literal into a double. It is a
// variable so a caller can swap in a different routine, for locale
// weirdness or a faster parser. The contract is strtod's: out of range
// magnitudes come back as infinities with a nil error and the classifier
// turns them into decode failures, see classifyFloat.
var ParseFloat = func(lit []byte) (f float64, err error) {
	f, err = strconv.ParseFloat(string(lit), 64)
	if err != nil {
		if e, ok := err.(*strconv.NumError); ok && e.Err == strconv.ErrRange {
			err = nil
		}
	}
	return
}

// FormatFloat renders a float value for the encoder. The default prints
// 21 significant digits, enough to reproduce any double exactly, at the
// cost of long renderings like 3.14159265000000020862. Swap it out for
// shortest-form output.
var FormatFloat = func(dst []byte, f float64) []byte {
	return strconv.AppendFloat(dst, f, 'g', 21, 64)
}
