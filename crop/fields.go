package crop

// FieldSpec describes one agronomic input: its display name, form key,
// accepted range and measurement unit.
type FieldSpec struct {
	Name string
	Key  string
	Min  float64
	Max  float64
	Unit string
}

// Fields lists the model inputs in the fixed order the classifier expects.
var Fields = []FieldSpec{
	{Name: "Nitrogen", Key: "nitrogen", Min: 0, Max: 140, Unit: "mg/kg"},
	{Name: "Phosphorus", Key: "phosphorus", Min: 0, Max: 140, Unit: "mg/kg"},
	{Name: "Potassium", Key: "potassium", Min: 0, Max: 200, Unit: "mg/kg"},
	{Name: "Temperature", Key: "temperature", Min: 0, Max: 50, Unit: "°C"},
	{Name: "Humidity", Key: "humidity", Min: 0, Max: 100, Unit: "%"},
	{Name: "pH", Key: "ph", Min: 0, Max: 14, Unit: ""},
	{Name: "Rainfall", Key: "rainfall", Min: 0, Max: 300, Unit: "mm"},
}

// NumFeatures is the width of a feature vector.
const NumFeatures = 7

// FeatureVector holds the validated inputs in field order.
type FeatureVector [NumFeatures]float64

// Crops lists every label the classifier can produce.
var Crops = []string{
	"rice", "maize", "chickpea", "kidneybeans", "pigeonpeas",
	"mothbeans", "mungbean", "blackgram", "lentil", "pomegranate",
	"banana", "mango", "grapes", "watermelon", "muskmelon", "apple",
	"orange", "papaya", "coconut", "cotton", "jute", "coffee",
}
