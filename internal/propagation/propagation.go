// Package propagation implements the RF link mathematics: free-space and
// Okumura-Hata path loss, link budgets, Fresnel zone geometry, and power-unit
// conversions. Everything here is a pure function of its inputs.
package propagation

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/signalfield/coverage-cli/internal/model"
)

// SpeedOfLight in meters per second, used for wavelength calculations.
const SpeedOfLight = 3e8

// Environment selects the Okumura-Hata correction applied on top of the
// urban base loss.
type Environment string

const (
	EnvUrban    Environment = "urban"
	EnvSuburban Environment = "suburban"
	EnvRural    Environment = "rural"
)

// ParseEnvironment maps a label to an Environment, defaulting to urban.
func ParseEnvironment(s string) Environment {
	switch Environment(s) {
	case EnvSuburban:
		return EnvSuburban
	case EnvRural:
		return EnvRural
	default:
		return EnvUrban
	}
}

// FreeSpacePathLoss returns the Friis free-space loss in dB:
//
//	20*log10(d_m) + 20*log10(f_GHz) + 92.45
//
// Frequency and distance must be positive; the logarithm is undefined
// otherwise.
func FreeSpacePathLoss(freqMHz, distKm float64) (float64, error) {
	if freqMHz <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: frequency must be positive, got %g MHz", freqMHz)
	}
	if distKm <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: distance must be positive, got %g km", distKm)
	}
	distM := distKm * 1000
	freqGHz := freqMHz / 1000
	return 20*math.Log10(distM) + 20*math.Log10(freqGHz) + 92.45, nil
}

// OkumuraHataPathLoss returns the Okumura-Hata empirical path loss in dB.
//
// The model is fitted for 150-1500 MHz, 1-20 km, tx height 30-200 m, and
// rx height 1-10 m. Inputs outside those ranges are accepted and produce
// extrapolated, less reliable results; only non-positive frequency or
// distance is rejected.
func OkumuraHataPathLoss(freqMHz, distKm, txHeightM, rxHeightM float64, env Environment) (float64, error) {
	if freqMHz <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: frequency must be positive, got %g MHz", freqMHz)
	}
	if distKm <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: distance must be positive, got %g km", distKm)
	}

	// Mobile antenna height correction a(h_rx); the fit changes form at
	// 200 MHz.
	var aHr float64
	if freqMHz <= 200 {
		aHr = 8.29*math.Pow(math.Log10(1.54*rxHeightM), 2) - 1.1
	} else {
		aHr = 3.2*math.Pow(math.Log10(11.75*rxHeightM), 2) - 4.97
	}

	loss := 69.55 + 26.16*math.Log10(freqMHz) -
		13.82*math.Log10(txHeightM) -
		aHr +
		(44.9-6.55*math.Log10(txHeightM))*math.Log10(distKm)

	switch env {
	case EnvSuburban:
		loss -= 2*math.Pow(math.Log10(freqMHz/28), 2) + 5.4
	case EnvRural:
		loss -= 4.78*math.Pow(math.Log10(freqMHz), 2) + 18.33*math.Log10(freqMHz) + 40.94
	}

	return loss, nil
}

// PathLoss dispatches to a path-loss model by name. Supported models are
// "free_space" and "okumura_hata"; tx/rx heights and environment are only
// used by the latter.
func PathLoss(modelName string, freqMHz, distKm, txHeightM, rxHeightM float64, env Environment) (float64, error) {
	switch modelName {
	case "free_space":
		return FreeSpacePathLoss(freqMHz, distKm)
	case "okumura_hata":
		return OkumuraHataPathLoss(freqMHz, distKm, txHeightM, rxHeightM, env)
	default:
		return 0, eris.Wrapf(model.ErrDomain, "propagation: unknown path loss model %q", modelName)
	}
}

// LinkBudgetParams holds the inputs of a link budget analysis.
type LinkBudgetParams struct {
	TxPowerDBm         float64 `json:"tx_power_dbm"`
	TxGainDBi          float64 `json:"tx_gain_dbi"`
	RxGainDBi          float64 `json:"rx_gain_dbi"`
	FrequencyMHz       float64 `json:"frequency_mhz"`
	DistanceKm         float64 `json:"distance_km"`
	AdditionalLossesDB float64 `json:"additional_losses_db"`
	RxSensitivityDBm   float64 `json:"rx_sensitivity_dbm"`
}

// LinkBudgetResult is the outcome of a link budget analysis.
type LinkBudgetResult struct {
	ReceivedPowerDBm float64 `json:"received_power_dbm"`
	PathLossDB       float64 `json:"path_loss_db"`
	EIRPDBm          float64 `json:"eirp_dbm"`
	TotalGainDB      float64 `json:"total_gain_db"`
	LinkMarginDB     float64 `json:"link_margin_db"`
	IsViable         bool    `json:"is_viable"`
	FadeMarginDB     float64 `json:"fade_margin_db"`
}

// LinkBudget computes a full free-space link budget. The link is viable when
// received power exceeds receiver sensitivity; the fade margin equals the
// link margin for viable links and zero otherwise.
func LinkBudget(p LinkBudgetParams) (LinkBudgetResult, error) {
	pathLoss, err := FreeSpacePathLoss(p.FrequencyMHz, p.DistanceKm)
	if err != nil {
		return LinkBudgetResult{}, err
	}

	eirp := p.TxPowerDBm + p.TxGainDBi
	received := eirp + p.RxGainDBi - pathLoss - p.AdditionalLossesDB
	margin := received - p.RxSensitivityDBm

	res := LinkBudgetResult{
		ReceivedPowerDBm: received,
		PathLossDB:       pathLoss,
		EIRPDBm:          eirp,
		TotalGainDB:      p.TxGainDBi + p.RxGainDBi,
		LinkMarginDB:     margin,
		IsViable:         margin > 0,
	}
	if res.IsViable {
		res.FadeMarginDB = margin
	}
	return res, nil
}

// Wavelength returns the wavelength in meters for a frequency in Hz.
func Wavelength(freqHz float64) float64 {
	return SpeedOfLight / freqHz
}

// FresnelZoneRadius returns the radius in meters of the given Fresnel zone at
// the midpoint of a path.
func FresnelZoneRadius(distKm, freqMHz float64, zone int) (float64, error) {
	if freqMHz <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: frequency must be positive, got %g MHz", freqMHz)
	}
	if distKm <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: distance must be positive, got %g km", distKm)
	}
	if zone < 1 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: fresnel zone number must be >= 1, got %d", zone)
	}
	distM := distKm * 1000
	lambda := Wavelength(freqMHz * 1e6)
	return math.Sqrt(float64(zone) * lambda * distM / 4), nil
}

// DishGainDBi returns the gain of a parabolic dish antenna from its diameter
// and aperture efficiency (typically 0.5-0.7).
func DishGainDBi(freqMHz, diameterM, efficiency float64) (float64, error) {
	if freqMHz <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: frequency must be positive, got %g MHz", freqMHz)
	}
	if diameterM <= 0 {
		return 0, eris.Wrapf(model.ErrDomain, "propagation: diameter must be positive, got %g m", diameterM)
	}
	lambda := Wavelength(freqMHz * 1e6)
	gainLinear := efficiency * math.Pow(math.Pi*diameterM/lambda, 2)
	return LinearToDB(gainLinear), nil
}
