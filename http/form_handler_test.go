package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postForm(mux *http.ServeMux, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func validForm() url.Values {
	return url.Values{
		"nitrogen":    {"90"},
		"phosphorus":  {"42"},
		"potassium":   {"43"},
		"temperature": {"20.8"},
		"humidity":    {"82"},
		"ph":          {"6.5"},
		"rainfall":    {"202.9"},
	}
}

func TestFormPage(t *testing.T) {
	mux := newTestMux(t, &fakeModel{label: "rice"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Enter Soil and Climate Parameters", "Nitrogen (mg/kg)", "pH", "Rainfall (mm)"} {
		if !strings.Contains(body, want) {
			t.Fatalf("form page missing %q", want)
		}
	}
}

func TestFormSubmitSuccess(t *testing.T) {
	mux := newTestMux(t, &fakeModel{label: "kidneybeans", confidence: 0.8})

	w := postForm(mux, validForm())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Recommended Crop: Kidneybeans") {
		t.Fatalf("expected rendered label, got: %s", body)
	}
	// Entered values are echoed back.
	for _, want := range []string{"Temperature: 20.8", `value="202.9"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected echoed input %q", want)
		}
	}
}

func TestFormSubmitValidationErrors(t *testing.T) {
	mux := newTestMux(t, &fakeModel{label: "rice"})

	values := validForm()
	values.Set("temperature", "")
	values.Set("ph", "")
	w := postForm(mux, values)

	body := w.Body.String()
	if !strings.Contains(body, "Temperature is required") || !strings.Contains(body, "pH is required") {
		t.Fatalf("expected itemized messages, got: %s", body)
	}
	if strings.Contains(body, "Recommended Crop") {
		t.Fatal("invalid submission must not render a recommendation")
	}
}

func TestFormSubmitNonNumeric(t *testing.T) {
	mux := newTestMux(t, &fakeModel{label: "rice"})

	values := validForm()
	values.Set("nitrogen", "plenty")
	w := postForm(mux, values)

	if !strings.Contains(w.Body.String(), "valid numbers") {
		t.Fatalf("expected generic parse message, got: %s", w.Body.String())
	}
}
