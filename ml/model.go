package ml

// Classifier is the prediction capability exposed by a loaded model
// artifact. Implementations are read-only after load.
type Classifier interface {
	Predict(features []float64) (label string, confidence float64, err error)
	Classes() []string
}
