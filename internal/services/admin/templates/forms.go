package templates

import "github.com/a-h/templ"

// Input types understood by FormPage.
const (
	InputText     = "text"
	InputEmail    = "email"
	InputPassword = "password"
	InputNumber   = "number"
	InputURL      = "url"
	InputDate     = "date"
	InputColor    = "color"
	InputSelect   = "select"
	InputCheckbox = "checkbox"
	InputTextarea = "textarea"
)

// FormView provides data for create and edit forms.
type FormView struct {
	Heading   PageHeading
	ActionURL string
	CancelURL string
	Submit    string
	Fields    []FormField
	// Grid is an optional repeating row editor below Fields.
	Grid  *GridView
	Error string
	Toast string
}

// FormField is one labelled input.
type FormField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Options  []OptionView
	Checked  bool
	Required bool
	Help     string
	// Error marks the field invalid with an inline message.
	Error string
}

// GridView edits a list of rows where each column is one input name,
// repeated per row.
type GridView struct {
	Label   string
	Columns []GridColumn
	Rows    [][]string
	// Footer is a summary line, such as a probability total.
	Footer string
}

// GridColumn describes one repeated input.
type GridColumn struct {
	Name  string
	Label string
	Type  string
}

// FormPage renders a form.
func FormPage(view FormView, loc Localizer) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Heading(view.Heading))
		h.render(Toast(view.Toast, false, toastDismissMS))
		h.render(ErrorBanner(view.Error, "", ""))
		h.raw(`<form method="post" class="form card"`)
		h.href("action", view.ActionURL)
		h.raw(">")
		for _, field := range view.Fields {
			formField(h, field, loc)
		}
		if view.Grid != nil {
			grid(h, *view.Grid)
		}
		h.raw(`<div class="actions"><button type="submit" class="btn btn-primary">`)
		submit := view.Submit
		if submit == "" {
			submit = T(loc, "action.save")
		}
		h.text(submit)
		h.raw("</button>")
		if view.CancelURL != "" {
			h.raw(`<a class="btn btn-ghost"`)
			h.href("href", view.CancelURL)
			h.raw(">")
			h.text(T(loc, "action.cancel"))
			h.raw("</a>")
		}
		h.raw("</div></form>")
	})
}

// FormFullPage renders the form inside the admin shell.
func FormFullPage(view FormView, page PageContext) templ.Component {
	return Layout(page, view.Heading.Title, FormPage(view, page.Loc))
}

func formField(h *htmlWriter, field FormField, loc Localizer) {
	class := "field"
	if field.Error != "" {
		class += " field-error"
	}
	h.raw("<label")
	h.attr("class", class)
	h.raw("><span>")
	h.text(field.Label)
	h.raw("</span>")
	switch field.Type {
	case InputSelect:
		h.raw(`<select class="select"`)
		h.attr("name", field.Name)
		h.boolAttr("required", field.Required)
		h.raw(">")
		for _, option := range field.Options {
			h.raw("<option")
			h.attr("value", option.Value)
			h.boolAttr("selected", option.Selected || (option.Value == field.Value && field.Value != ""))
			h.raw(">")
			h.text(option.Label)
			h.raw("</option>")
		}
		h.raw("</select>")
	case InputCheckbox:
		h.raw(`<input type="checkbox" class="toggle" value="on"`)
		h.attr("name", field.Name)
		h.boolAttr("checked", field.Checked)
		h.raw(">")
	case InputTextarea:
		h.raw(`<textarea class="textarea"`)
		h.attr("name", field.Name)
		h.boolAttr("required", field.Required)
		h.raw(">")
		h.text(field.Value)
		h.raw("</textarea>")
	default:
		kind := field.Type
		if kind == "" {
			kind = InputText
		}
		h.raw(`<input class="input"`)
		h.attr("type", kind)
		h.attr("name", field.Name)
		if kind != InputPassword {
			h.attr("value", field.Value)
		}
		if kind == InputNumber {
			h.attr("step", "any")
		}
		h.boolAttr("required", field.Required)
		h.raw(">")
	}
	if field.Error != "" {
		h.element("span", "field-message", field.Error)
	} else if field.Help != "" {
		h.element("span", "field-help", T(loc, field.Help))
	}
	h.raw("</label>")
}

func grid(h *htmlWriter, g GridView) {
	h.raw(`<fieldset class="grid-editor"><legend>`)
	h.text(g.Label)
	h.raw(`</legend><table class="table table-sm"><thead><tr>`)
	for _, column := range g.Columns {
		h.element("th", "", column.Label)
	}
	h.raw("</tr></thead><tbody>")
	for _, row := range g.Rows {
		h.raw("<tr>")
		for i, column := range g.Columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			kind := column.Type
			if kind == "" {
				kind = InputText
			}
			h.raw(`<td><input class="input input-sm"`)
			h.attr("type", kind)
			h.attr("name", column.Name)
			h.attr("value", value)
			h.attr("aria-label", column.Label)
			if kind == InputNumber {
				h.attr("step", "any")
			}
			h.raw("></td>")
		}
		h.raw("</tr>")
	}
	h.raw("</tbody></table>")
	if g.Footer != "" {
		h.element("p", "grid-footer", g.Footer)
	}
	h.raw("</fieldset>")
}
