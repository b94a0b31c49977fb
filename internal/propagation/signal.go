package propagation

import "math"

// Profile is the transmitter/receiver parameter set used when estimating
// signal from a tower. The zero value is not useful; start from
// DefaultProfile.
type Profile struct {
	TxPowerDBm   float64 `json:"tx_power_dbm" yaml:"tx_power_dbm" mapstructure:"tx_power_dbm"`
	TxGainDBi    float64 `json:"tx_gain_dbi" yaml:"tx_gain_dbi" mapstructure:"tx_gain_dbi"`
	RxGainDBi    float64 `json:"rx_gain_dbi" yaml:"rx_gain_dbi" mapstructure:"rx_gain_dbi"`
	FrequencyMHz float64 `json:"frequency_mhz" yaml:"frequency_mhz" mapstructure:"frequency_mhz"`
	TxHeightM    float64 `json:"tx_height_m" yaml:"tx_height_m" mapstructure:"tx_height_m"`
	RxHeightM    float64 `json:"rx_height_m" yaml:"rx_height_m" mapstructure:"rx_height_m"`
}

// DefaultProfile is a typical macro-cell profile: 43 dBm (20 W) transmit
// power, 15 dBi sector antenna, omni handset receiver at 1.5 m, LTE band 1.
func DefaultProfile() Profile {
	return Profile{
		TxPowerDBm:   43,
		TxGainDBi:    15,
		RxGainDBi:    0,
		FrequencyMHz: 2100,
		TxHeightM:    30,
		RxHeightM:    1.5,
	}
}

// minSignalDistanceKm floors the distance used for signal estimation.
// Below 10 m the urban model's logarithms blow up.
const minSignalDistanceKm = 0.01

// SignalFromTower estimates the received signal in dBm at a given distance
// from a transmitter, using the urban Okumura-Hata model with the profile's
// parameters. Distances under 10 m are clamped, and the result is clamped to
// the physically plausible [-120, 0] dBm range.
func SignalFromTower(distKm float64, p Profile) float64 {
	if distKm < minSignalDistanceKm {
		distKm = minSignalDistanceKm
	}

	// Distance is clamped above; a failure here means the profile carries a
	// non-positive frequency, which reads as no signal.
	pathLoss, err := OkumuraHataPathLoss(p.FrequencyMHz, distKm, p.TxHeightM, p.RxHeightM, EnvUrban)
	if err != nil {
		return -120
	}

	eirp := p.TxPowerDBm + p.TxGainDBi
	received := eirp - pathLoss + p.RxGainDBi

	return math.Max(-120, math.Min(0, received))
}
