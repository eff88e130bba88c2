package main

import (
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/gorilla/csrf"

	"github.com/Segren/registration/internal/data"
	"github.com/Segren/registration/internal/form"
	"github.com/Segren/registration/ui"
)

type fieldView struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

type templateData struct {
	CSRFField  template.HTML
	Registered bool
	Inputs     []fieldView
}

var fieldInputs = map[string]struct {
	label string
	kind  string
}{
	data.FieldIDNumber:    {"ID Number", "text"},
	data.FieldFirstName:   {"First Name", "text"},
	data.FieldLastName:    {"Last Name", "text"},
	data.FieldDateOfBirth: {"Date of Birth", "date"},
	data.FieldEmail:       {"Email", "email"},
}

func (app *application) newTemplateData(r *http.Request, c *form.Controller, registered bool) templateData {
	values := c.Values()

	inputs := make([]fieldView, 0, len(data.Fields))
	for _, name := range data.Fields {
		in := fieldInputs[name]
		inputs = append(inputs, fieldView{
			Name:  name,
			Label: in.label,
			Type:  in.kind,
			Value: values.Get(name),
			Error: c.Error(name),
		})
	}

	return templateData{
		CSRFField:  csrf.TemplateField(r),
		Registered: registered,
		Inputs:     inputs,
	}
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{
			"html/base.tmpl",
			"html/partials/*.tmpl",
			page,
		}

		ts, err := template.New(name).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
