package propagation

import "math"

// Power-unit conversions. Each pair is an exact bijection:
// WattsToDBm(DBmToWatts(x)) == x to floating-point tolerance.

// DBmToWatts converts power in dBm to Watts.
func DBmToWatts(dbm float64) float64 {
	return math.Pow(10, (dbm-30)/10)
}

// WattsToDBm converts power in Watts to dBm.
func WattsToDBm(watts float64) float64 {
	return 10 * math.Log10(watts*1000)
}

// DBmToMilliwatts converts power in dBm to milliwatts.
func DBmToMilliwatts(dbm float64) float64 {
	return math.Pow(10, dbm/10)
}

// MilliwattsToDBm converts power in milliwatts to dBm.
func MilliwattsToDBm(mw float64) float64 {
	return 10 * math.Log10(mw)
}

// DBToLinear converts a dB value to linear scale.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearToDB converts a linear value to dB.
func LinearToDB(linear float64) float64 {
	return 10 * math.Log10(linear)
}
