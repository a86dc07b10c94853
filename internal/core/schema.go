package core

// featureOrder is the canonical feature order. It must match the column
// order the classifier was trained with; every vector handed to the model
// is built from this list and nothing else.
var featureOrder = []string{
	"age",
	"gender",
	"pulse_rate",
	"systolic_bp",
	"diastolic_bp",
	"glucose",
	"height",
	"weight",
	"bmi",
	"family_diabetes",
	"hypertensive",
	"family_hypertension",
	"cardiovascular_disease",
	"stroke",
}

// featureLabels maps schema keys to the display labels used on forms,
// reports and logs.
var featureLabels = map[string]string{
	"age":                    "Usia (Tahun)",
	"gender":                 "Jenis Kelamin",
	"pulse_rate":             "Nadi (bpm)",
	"systolic_bp":            "Tekanan Darah Sistolik",
	"diastolic_bp":           "Tekanan Darah Diastolik",
	"glucose":                "Gula Darah (mmol/L)",
	"height":                 "Tinggi (m)",
	"weight":                 "Berat (kg)",
	"bmi":                    "Indeks Massa Tubuh",
	"family_diabetes":        "Riwayat Diabetes Keluarga",
	"hypertensive":           "Status Hipertensi",
	"family_hypertension":    "Riwayat Hipertensi Keluarga",
	"cardiovascular_disease": "Penyakit Jantung",
	"stroke":                 "Riwayat Stroke",
}

// categoricalFeatures are the schema features holding encoded categories
// (gender) or 0/1 clinical flags rather than free numeric measurements.
var categoricalFeatures = map[string]bool{
	"gender":                 true,
	"family_diabetes":        true,
	"hypertensive":           true,
	"family_hypertension":    true,
	"cardiovascular_disease": true,
	"stroke":                 true,
}

// Features returns the schema feature names in canonical order.
func Features() []string {
	out := make([]string, len(featureOrder))
	copy(out, featureOrder)
	return out
}

// FeatureCount returns the width of a feature vector.
func FeatureCount() int {
	return len(featureOrder)
}

// Label returns the display label for a schema feature, falling back to
// the key itself for features without one.
func Label(name string) string {
	if l, ok := featureLabels[name]; ok {
		return l
	}
	return name
}

// IsCategorical reports whether a feature holds an encoded category or
// clinical flag.
func IsCategorical(name string) bool {
	return categoricalFeatures[name]
}
