// Package pdfform fills and reads the fields of a PDF AcroForm.
package pdfform

import (
	"bytes"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// textField mirrors pdfcpu's form JSON for a text field.
type textField struct {
	Pages  []int  `json:"pages,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value"`
	Locked bool   `json:"locked"`
}

type form struct {
	TextFields []textField `json:"textfield,omitempty"`
}

type formGroup struct {
	Forms []form `json:"forms"`
}

// Filler sets named text fields through pdfcpu.
type Filler struct {
	conf *model.Configuration
}

func NewFiller() *Filler {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Filler{conf: conf}
}

// Fill writes template to w with each field in values set by name.
func (f *Filler) Fill(template io.ReadSeeker, values map[string]string, w io.Writer) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]textField, 0, len(names))
	for _, name := range names {
		fields = append(fields, textField{Name: name, Value: values[name]})
	}
	data, err := json.Marshal(formGroup{Forms: []form{{TextFields: fields}}})
	if err != nil {
		return err
	}
	return api.FillForm(template, bytes.NewReader(data), w, f.conf)
}

// ReadFields returns the field values of a PDF keyed by field name.
// pdfcpu reports fields whose value parses as a date as date fields, so both
// kinds are collected.
func (f *Filler) ReadFields(doc io.ReadSeeker) (map[string]string, error) {
	fg, err := api.ExportForm(doc, "", f.conf)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	for _, fm := range fg.Forms {
		for _, tf := range fm.TextFields {
			values[tf.Name] = tf.Value
		}
		for _, df := range fm.DateFields {
			values[df.Name] = df.Value
		}
	}
	return values, nil
}
