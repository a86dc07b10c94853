package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModel struct {
	class       int
	proba       []float64
	importances []float64
}

func (m *fakeModel) Predict(x []float64) int { return m.class }

func (m *fakeModel) PredictProba(x []float64) []float64 { return m.proba }

func (m *fakeModel) FeatureImportances() []float64 { return m.importances }

// classOnlyModel has no probability or importance capabilities.
type classOnlyModel struct {
	class int
}

func (m *classOnlyModel) Predict(x []float64) int { return m.class }

type fakeProvider struct {
	model       Classifier
	reloads     int
	loadOnRetry Classifier
}

func (p *fakeProvider) Get() (Classifier, bool) {
	if p.model == nil {
		return nil, false
	}
	return p.model, true
}

func (p *fakeProvider) Reload() error {
	p.reloads++
	if p.loadOnRetry != nil {
		p.model = p.loadOnRetry
	}
	return nil
}

type recordingAudit struct {
	appends []string
	err     error
}

func (a *recordingAudit) Append(ctx context.Context, input RawRecord, prediction, probability string) error {
	if a.err != nil {
		return a.err
	}
	a.appends = append(a.appends, prediction+" "+probability)
	return nil
}

func (a *recordingAudit) Recent(ctx context.Context, n int) ([]AuditEntry, error) { return nil, nil }

func (a *recordingAudit) Close() error { return nil }

func newTestService(m Classifier, audit AuditLog) *PredictionService {
	if audit == nil {
		audit = &recordingAudit{}
	}
	return NewPredictionService(&fakeProvider{model: m}, NewPreprocessor(), audit, zap.NewNop())
}

func TestPredictPositive(t *testing.T) {
	m := &fakeModel{
		class:       1,
		proba:       []float64{0.15, 0.85},
		importances: importancesFor(map[string]float64{"glucose": 0.5, "bmi": 0.3, "age": 0.2}),
	}
	svc := newTestService(m, nil)

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)

	assert.Equal(t, LabelPositive, result.Label)
	assert.Equal(t, 85.0, result.ProbabilityPercent)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	require.Len(t, result.FeatureImportance, 3)
	assert.Equal(t, "glucose", result.FeatureImportance[0].Name)
	assert.Equal(t, 50.0, result.FeatureImportance[0].Value)
	assert.Equal(t, validRecord(), result.InputData)
}

func TestPredictWithoutProbabilityCapability(t *testing.T) {
	svc := newTestService(&classOnlyModel{class: 1}, nil)

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)

	assert.Equal(t, LabelPositive, result.Label)
	assert.Equal(t, 100.0, result.ProbabilityPercent)
	assert.Empty(t, result.FeatureImportance)
}

func TestPredictNegativeWithoutProbabilityCapability(t *testing.T) {
	svc := newTestService(&classOnlyModel{class: 0}, nil)

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)

	assert.Equal(t, LabelNegative, result.Label)
	assert.Equal(t, 0.0, result.ProbabilityPercent)
	assert.Equal(t, RiskLow, result.RiskLevel)
}

func TestPredictModelUnavailable(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewPredictionService(provider, NewPreprocessor(), &recordingAudit{}, zap.NewNop())

	_, err := svc.Predict(context.Background(), validRecord())
	require.ErrorIs(t, err, ErrModelUnavailable)
	assert.Equal(t, 1, provider.reloads)
}

func TestPredictReloadsOnceWhenAbsent(t *testing.T) {
	provider := &fakeProvider{loadOnRetry: &fakeModel{class: 0, proba: []float64{0.9, 0.1}}}
	svc := NewPredictionService(provider, NewPreprocessor(), &recordingAudit{}, zap.NewNop())

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)
	assert.Equal(t, LabelNegative, result.Label)
	assert.Equal(t, 1, provider.reloads)
}

func TestPredictInvalidInput(t *testing.T) {
	svc := newTestService(&fakeModel{class: 0, proba: []float64{1, 0}}, nil)

	record := validRecord()
	delete(record, "glucose")

	_, err := svc.Predict(context.Background(), record)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Reasons, 1)
	assert.Contains(t, invalid.Reasons[0], "glucose")
}

func TestPredictUnencodableInput(t *testing.T) {
	svc := newTestService(&fakeModel{class: 0, proba: []float64{1, 0}}, nil)

	record := validRecord()
	record["gender"] = "unknown"

	_, err := svc.Predict(context.Background(), record)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestPredictAuditFailureDoesNotAffectResult(t *testing.T) {
	audit := &recordingAudit{err: errors.New("disk full")}
	svc := newTestService(&fakeModel{class: 1, proba: []float64{0.2, 0.8}}, audit)

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)
	assert.Equal(t, LabelPositive, result.Label)
}

func TestPredictAppendsAudit(t *testing.T) {
	audit := &recordingAudit{}
	svc := newTestService(&fakeModel{class: 1, proba: []float64{0.2, 0.8}}, audit)

	_, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)
	require.Len(t, audit.appends, 1)
	assert.Equal(t, "Diabetic 80.00%", audit.appends[0])
}

func TestRiskLevelBoundaries(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskLevel(0.70))
	assert.Equal(t, RiskMedium, RiskLevel(0.6999))
	assert.Equal(t, RiskMedium, RiskLevel(0.40))
	assert.Equal(t, RiskLow, RiskLevel(0.3999))
}

func TestExplanationCapsAtFivePositive(t *testing.T) {
	imp := make([]float64, FeatureCount())
	for i := range imp {
		imp[i] = float64(FeatureCount()-i) / 100
	}
	m := &fakeModel{class: 1, proba: []float64{0.3, 0.7}, importances: imp}
	svc := newTestService(m, nil)

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)

	require.Len(t, result.FeatureImportance, 5)
	for _, fw := range result.FeatureImportance {
		assert.Greater(t, fw.Value, 0.0)
	}
	// Descending order.
	for i := 1; i < len(result.FeatureImportance); i++ {
		assert.GreaterOrEqual(t,
			result.FeatureImportance[i-1].Value,
			result.FeatureImportance[i].Value)
	}
}

func TestExplanationSkipsZeroImportances(t *testing.T) {
	m := &fakeModel{
		class:       1,
		proba:       []float64{0.3, 0.7},
		importances: importancesFor(map[string]float64{"glucose": 1.0}),
	}
	svc := newTestService(m, nil)

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)

	require.Len(t, result.FeatureImportance, 1)
	assert.Equal(t, "glucose", result.FeatureImportance[0].Name)
}

func TestExplanationMismatchedWidthYieldsEmpty(t *testing.T) {
	m := &fakeModel{class: 1, proba: []float64{0.3, 0.7}, importances: []float64{1.0}}
	svc := newTestService(m, nil)

	result, err := svc.Predict(context.Background(), validRecord())
	require.NoError(t, err)
	assert.Empty(t, result.FeatureImportance)
}

// importancesFor builds a schema-width importance vector with the given
// named weights.
func importancesFor(weights map[string]float64) []float64 {
	imp := make([]float64, FeatureCount())
	for i, name := range Features() {
		imp[i] = weights[name]
	}
	return imp
}
