package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAndEncodeGenderCodes(t *testing.T) {
	pre := NewPreprocessor()

	cases := map[string]float64{
		"male":      1,
		"Male":      1,
		"laki-laki": 1,
		"female":    0,
		"Perempuan": 0,
		"F":         0,
	}
	for raw, want := range cases {
		record := validRecord()
		record["gender"] = raw

		encoded, dropped, err := pre.CleanAndEncode([]RawRecord{record}, false)
		require.NoError(t, err, "gender %q", raw)
		require.Len(t, encoded, 1)
		assert.Zero(t, dropped)
		assert.Equal(t, want, encoded[0]["gender"], "gender %q", raw)
	}
}

func TestCleanAndEncodeFlagCodes(t *testing.T) {
	pre := NewPreprocessor()
	record := validRecord()
	record["family_diabetes"] = "Ya"
	record["hypertensive"] = "no"
	record["stroke"] = "1"

	encoded, _, err := pre.CleanAndEncode([]RawRecord{record}, false)
	require.NoError(t, err)

	assert.Equal(t, 1.0, encoded[0]["family_diabetes"])
	assert.Equal(t, 0.0, encoded[0]["hypertensive"])
	assert.Equal(t, 1.0, encoded[0]["stroke"])
}

func TestCleanAndEncodeNumericStrings(t *testing.T) {
	pre := NewPreprocessor()
	record := validRecord()
	record["glucose"] = " 10.5 "
	record["age"] = "52"

	encoded, _, err := pre.CleanAndEncode([]RawRecord{record}, false)
	require.NoError(t, err)

	assert.Equal(t, 10.5, encoded[0]["glucose"])
	assert.Equal(t, 52.0, encoded[0]["age"])
}

func TestCleanAndEncodeServingRejectsBadRecord(t *testing.T) {
	pre := NewPreprocessor()
	record := validRecord()
	record["glucose"] = "not-a-number"

	_, _, err := pre.CleanAndEncode([]RawRecord{record}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glucose")
}

func TestCleanAndEncodeTrainingDropsBadRecords(t *testing.T) {
	pre := NewPreprocessor()
	good := validRecord()
	bad := validRecord()
	bad["bmi"] = "???"

	encoded, dropped, err := pre.CleanAndEncode([]RawRecord{good, bad, good}, true)
	require.NoError(t, err)

	assert.Len(t, encoded, 2)
	assert.Equal(t, 1, dropped)
}

func TestCleanAndEncodeDeterminism(t *testing.T) {
	pre := NewPreprocessor()
	record := validRecord()

	first, _, err := pre.CleanAndEncode([]RawRecord{record}, false)
	require.NoError(t, err)
	second, _, err := pre.CleanAndEncode([]RawRecord{record}, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetFeaturesSchemaOrder(t *testing.T) {
	pre := NewPreprocessor()
	record := validRecord()

	encoded, _, err := pre.CleanAndEncode([]RawRecord{record}, false)
	require.NoError(t, err)

	matrix, err := pre.GetFeatures(encoded)
	require.NoError(t, err)
	require.Len(t, matrix, 1)
	require.Len(t, matrix[0], FeatureCount())

	// Column order must follow the schema, not map iteration order.
	for i, feature := range Features() {
		assert.Equal(t, encoded[0][feature], matrix[0][i], "column %d (%s)", i, feature)
	}
}

func TestGetFeaturesFailsOnMissingFeature(t *testing.T) {
	pre := NewPreprocessor()
	encoded := EncodedRecord{"age": 40}

	_, err := pre.GetFeatures([]EncodedRecord{encoded})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gender")
}
