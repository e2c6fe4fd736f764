package prediction

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/routeeta/core/factory"
	"github.com/kilianp07/routeeta/core/model"
)

// rcond is the relative singular value cutoff used to determine the
// effective rank of the design matrix.
const rcond = 1e-10

// Fitter estimates Coefficients from training samples.
type Fitter interface {
	Name() string
	Fit(samples []model.TrainingSample) (Coefficients, error)
}

// OLSFitter fits ordinary least squares with an intercept. Rank deficient
// problems, including fewer samples than features, yield the minimum-norm
// solution.
type OLSFitter struct{}

func (OLSFitter) Name() string { return "ols" }

func (OLSFitter) Fit(samples []model.TrainingSample) (Coefficients, error) {
	x, y, xm, ym, err := centered(samples)
	if err != nil {
		return Coefficients{}, err
	}
	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return Coefficients{}, errors.New("ols: svd factorization failed")
	}
	beta := mat.NewDense(len(model.FeatureColumns), 1, nil)
	if rank := svd.Rank(rcond); rank > 0 {
		var sol mat.Dense
		svd.SolveTo(&sol, y, rank)
		beta = &sol
	}
	return assemble(beta, xm, ym), nil
}

// RidgeFitter fits L2-regularised least squares. The intercept is not
// penalised.
type RidgeFitter struct {
	Lambda float64
}

func (RidgeFitter) Name() string { return "ridge" }

func (f RidgeFitter) Fit(samples []model.TrainingSample) (Coefficients, error) {
	if f.Lambda <= 0 {
		return Coefficients{}, fmt.Errorf("ridge: lambda must be positive, got %v", f.Lambda)
	}
	x, y, xm, ym, err := centered(samples)
	if err != nil {
		return Coefficients{}, err
	}
	var xtx, xty mat.Dense
	xtx.Mul(x.T(), x)
	for i := 0; i < len(model.FeatureColumns); i++ {
		xtx.Set(i, i, xtx.At(i, i)+f.Lambda)
	}
	xty.Mul(x.T(), y)
	var beta mat.Dense
	if err := beta.Solve(&xtx, &xty); err != nil {
		return Coefficients{}, fmt.Errorf("ridge: %w", err)
	}
	return assemble(&beta, xm, ym), nil
}

// centered returns the mean-centred design matrix and target with their means.
func centered(samples []model.TrainingSample) (*mat.Dense, *mat.Dense, []float64, float64, error) {
	n := len(samples)
	if n == 0 {
		return nil, nil, nil, 0, ErrInsufficientTrainingData
	}
	p := len(model.FeatureColumns)
	xm := make([]float64, p)
	var ym float64
	for _, s := range samples {
		for j, v := range s.Features() {
			xm[j] += v
		}
		ym += s.DelayMinutes
	}
	for j := range xm {
		xm[j] /= float64(n)
	}
	ym /= float64(n)

	x := mat.NewDense(n, p, nil)
	y := mat.NewDense(n, 1, nil)
	for i, s := range samples {
		for j, v := range s.Features() {
			x.Set(i, j, v-xm[j])
		}
		y.Set(i, 0, s.DelayMinutes-ym)
	}
	return x, y, xm, ym, nil
}

func assemble(beta mat.Matrix, xm []float64, ym float64) Coefficients {
	c := Coefficients{
		Distance: beta.At(0, 0),
		Weather:  beta.At(1, 0),
		Traffic:  beta.At(2, 0),
	}
	c.Intercept = ym - (c.Distance*xm[0] + c.Weather*xm[1] + c.Traffic*xm[2])
	return c
}

var fitterRegistry = factory.NewRegistry[Fitter]()

func init() {
	_ = fitterRegistry.Register("ols", func(map[string]any) (Fitter, error) {
		return OLSFitter{}, nil
	})
	_ = fitterRegistry.Register("ridge", func(conf map[string]any) (Fitter, error) {
		c := struct {
			Lambda float64 `json:"lambda"`
		}{Lambda: 1}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Lambda <= 0 {
			return nil, fmt.Errorf("ridge: lambda must be positive, got %v", c.Lambda)
		}
		return RidgeFitter{Lambda: c.Lambda}, nil
	})
}

// NewFitter builds a Fitter from configuration. An empty type selects OLS.
func NewFitter(cfg factory.ModuleConfig) (Fitter, error) {
	if cfg.Type == "" {
		return OLSFitter{}, nil
	}
	return fitterRegistry.Create(cfg)
}
