package propagation

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfield/coverage-cli/internal/model"
)

func TestFreeSpacePathLoss_KnownValue(t *testing.T) {
	// 20*log10(1000 m) + 20*log10(1 GHz) + 92.45 = 60 + 0 + 92.45
	loss, err := FreeSpacePathLoss(1000, 1)
	require.NoError(t, err)
	assert.InDelta(t, 152.45, loss, 1e-9)
}

func TestFreeSpacePathLoss_Monotonic(t *testing.T) {
	base, err := FreeSpacePathLoss(900, 2)
	require.NoError(t, err)

	farther, err := FreeSpacePathLoss(900, 4)
	require.NoError(t, err)
	assert.Greater(t, farther, base, "loss must grow with distance")

	higher, err := FreeSpacePathLoss(1800, 2)
	require.NoError(t, err)
	assert.Greater(t, higher, base, "loss must grow with frequency")

	// Doubling distance or frequency adds exactly 20*log10(2) dB.
	assert.InDelta(t, 6.0205999132796239, farther-base, 1e-9)
	assert.InDelta(t, 6.0205999132796239, higher-base, 1e-9)
}

func TestFreeSpacePathLoss_DomainErrors(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		dist float64
	}{
		{"zero frequency", 0, 1},
		{"negative frequency", -900, 1},
		{"zero distance", 900, 0},
		{"negative distance", 900, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FreeSpacePathLoss(tt.freq, tt.dist)
			require.Error(t, err)
			assert.True(t, eris.Is(err, model.ErrDomain))
		})
	}
}

func TestOkumuraHata_Urban900MHz(t *testing.T) {
	// a(h_rx) = 3.2*log10(11.75*1.5)^2 - 4.97 ~ 0 at 1.5 m, so for
	// 900 MHz, 5 km, 30 m:
	// 69.55 + 26.16*log10(900) - 13.82*log10(30) + (44.9-6.55*log10(30))*log10(5)
	loss, err := OkumuraHataPathLoss(900, 5, 30, 1.5, EnvUrban)
	require.NoError(t, err)
	assert.InDelta(t, 151.034, loss, 0.01)
}

func TestOkumuraHata_EnvironmentOffsets(t *testing.T) {
	urban, err := OkumuraHataPathLoss(900, 5, 30, 1.5, EnvUrban)
	require.NoError(t, err)
	suburban, err := OkumuraHataPathLoss(900, 5, 30, 1.5, EnvSuburban)
	require.NoError(t, err)
	rural, err := OkumuraHataPathLoss(900, 5, 30, 1.5, EnvRural)
	require.NoError(t, err)

	// suburban offset: 2*log10(900/28)^2 + 5.4 = 9.942
	assert.InDelta(t, 9.942, urban-suburban, 0.01)
	assert.Less(t, rural, suburban, "rural correction exceeds suburban")
}

func TestOkumuraHata_LowFrequencyCorrectionBranch(t *testing.T) {
	// At and below 200 MHz the a(h_rx) fit switches to the
	// 8.29*log10(1.54*h)^2 - 1.1 form. At a 10 m receiver the branches
	// disagree by ~1.85 dB, so crossing the boundary moves the loss
	// discontinuously.
	below, err := OkumuraHataPathLoss(200, 5, 30, 10, EnvUrban)
	require.NoError(t, err)
	above, err := OkumuraHataPathLoss(200.001, 5, 30, 10, EnvUrban)
	require.NoError(t, err)
	assert.Greater(t, math.Abs(below-above), 1.0)
}

func TestOkumuraHata_ExtrapolatesOutsideValidity(t *testing.T) {
	// 20 GHz at 100 km is far outside the fitted range; the model must
	// extrapolate, not fail.
	loss, err := OkumuraHataPathLoss(20000, 100, 250, 12, EnvUrban)
	require.NoError(t, err)
	assert.Greater(t, loss, 0.0)
}

func TestOkumuraHata_DomainErrors(t *testing.T) {
	_, err := OkumuraHataPathLoss(0, 5, 30, 1.5, EnvUrban)
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrDomain))

	_, err = OkumuraHataPathLoss(900, -5, 30, 1.5, EnvUrban)
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrDomain))
}

func TestPathLoss_Dispatch(t *testing.T) {
	fs, err := PathLoss("free_space", 900, 5, 30, 1.5, EnvUrban)
	require.NoError(t, err)
	oh, err := PathLoss("okumura_hata", 900, 5, 30, 1.5, EnvUrban)
	require.NoError(t, err)
	assert.NotEqual(t, fs, oh)

	_, err = PathLoss("two_ray", 900, 5, 30, 1.5, EnvUrban)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown path loss model")
}

func TestLinkBudget_Viable(t *testing.T) {
	res, err := LinkBudget(LinkBudgetParams{
		TxPowerDBm:       43,
		TxGainDBi:        15,
		RxGainDBi:        5,
		FrequencyMHz:     2100,
		DistanceKm:       0.5,
		RxSensitivityDBm: -100,
	})
	require.NoError(t, err)

	// path loss = 20*log10(500) + 20*log10(2.1) + 92.45 = 152.873
	assert.InDelta(t, 152.873, res.PathLossDB, 0.01)
	assert.InDelta(t, 58, res.EIRPDBm, 1e-9)
	assert.InDelta(t, 20, res.TotalGainDB, 1e-9)
	// received = 58 + 5 - 152.873 = -89.873; margin = 10.127
	assert.InDelta(t, -89.873, res.ReceivedPowerDBm, 0.01)
	assert.InDelta(t, 10.127, res.LinkMarginDB, 0.01)
	assert.True(t, res.IsViable)
	assert.InDelta(t, res.LinkMarginDB, res.FadeMarginDB, 1e-9)
}

func TestLinkBudget_NotViable(t *testing.T) {
	res, err := LinkBudget(LinkBudgetParams{
		TxPowerDBm:         43,
		TxGainDBi:          15,
		FrequencyMHz:       2100,
		DistanceKm:         50,
		AdditionalLossesDB: 10,
		RxSensitivityDBm:   -100,
	})
	require.NoError(t, err)
	assert.False(t, res.IsViable)
	assert.Negative(t, res.LinkMarginDB)
	assert.Zero(t, res.FadeMarginDB)
}

func TestLinkBudget_DomainError(t *testing.T) {
	_, err := LinkBudget(LinkBudgetParams{TxPowerDBm: 43, FrequencyMHz: 2100, DistanceKm: 0})
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrDomain))
}

func TestFresnelZoneRadius_KnownValue(t *testing.T) {
	// lambda = 3e8/2.4e9 = 0.125 m; r = sqrt(0.125*10000/4) = 17.678 m
	r, err := FresnelZoneRadius(10, 2400, 1)
	require.NoError(t, err)
	assert.InDelta(t, 17.678, r, 0.001)
}

func TestFresnelZoneRadius_FrequencyScaling(t *testing.T) {
	// Radius scales as sqrt(1/f): quadrupling frequency halves the radius.
	r1, err := FresnelZoneRadius(10, 1000, 1)
	require.NoError(t, err)
	r4, err := FresnelZoneRadius(10, 4000, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, r1/r4, 1e-9)
}

func TestFresnelZoneRadius_ZoneScaling(t *testing.T) {
	r1, err := FresnelZoneRadius(10, 2400, 1)
	require.NoError(t, err)
	r4, err := FresnelZoneRadius(10, 2400, 4)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, r4/r1, 1e-9)
}

func TestFresnelZoneRadius_DomainErrors(t *testing.T) {
	_, err := FresnelZoneRadius(0, 2400, 1)
	require.Error(t, err)
	_, err = FresnelZoneRadius(10, 0, 1)
	require.Error(t, err)
	_, err = FresnelZoneRadius(10, 2400, 0)
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrDomain))
}

func TestWavelength(t *testing.T) {
	assert.InDelta(t, 0.125, Wavelength(2.4e9), 1e-12)
	assert.InDelta(t, 300, Wavelength(1e6), 1e-9)
}

func TestDishGainDBi(t *testing.T) {
	// 1 m dish at 10 GHz (lambda 0.03 m), 60% efficiency:
	// 10*log10(0.6*(pi/0.03)^2) = 38.16 dBi
	g, err := DishGainDBi(10000, 1, 0.6)
	require.NoError(t, err)
	assert.InDelta(t, 38.16, g, 0.01)

	_, err = DishGainDBi(0, 1, 0.6)
	require.Error(t, err)
	_, err = DishGainDBi(10000, 0, 0.6)
	require.Error(t, err)
}
