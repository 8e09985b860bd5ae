package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"croprec/crop"
	"croprec/inference"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

// fieldView is one form input with its entered value preserved across
// submissions.
type fieldView struct {
	crop.FieldSpec
	Label       string
	Placeholder string
	Value       string
}

type formPage struct {
	Fields []fieldView
	Errors []string
	Result *inference.Recommendation
	Crops  []string
}

func (h *Handlers) newFormPage(values []string) formPage {
	fields := make([]fieldView, len(crop.Fields))
	for i, f := range crop.Fields {
		label := f.Name
		if f.Unit != "" {
			label = fmt.Sprintf("%s (%s)", f.Name, f.Unit)
		}
		fields[i] = fieldView{
			FieldSpec:   f,
			Label:       label,
			Placeholder: fmt.Sprintf("Enter value between %g-%g", f.Min, f.Max),
		}
		if values != nil {
			fields[i].Value = values[i]
		}
	}
	return formPage{Fields: fields, Crops: h.svc.Classes()}
}

func (h *Handlers) renderForm(w http.ResponseWriter, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, page); err != nil {
		h.logger.Error("render form", zap.Error(err))
	}
}

func (h *Handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, h.newFormPage(nil))
}

func (h *Handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	raw := make([]string, len(crop.Fields))
	for i, f := range crop.Fields {
		raw[i] = r.PostFormValue(f.Key)
	}

	page := h.newFormPage(raw)

	vec, msgs := crop.ParseInputs(raw)
	if len(msgs) > 0 {
		page.Errors = msgs
		h.renderForm(w, page)
		return
	}

	rec, err := h.svc.Recommend(r.Context(), vec)
	if err != nil {
		h.logger.Error("inference failed", zap.Error(err))
		page.Errors = []string{"Error making prediction: " + err.Error()}
		h.renderForm(w, page)
		return
	}

	page.Result = &rec
	h.renderForm(w, page)
}
