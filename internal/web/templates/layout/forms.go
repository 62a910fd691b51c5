package layout

// Input renders a labelled input
func Input(p *Printer, label, name, kind, value string, required bool) {
	p.Raw(`<label>`)
	p.Text(label)
	p.Raw(`<input`)
	p.Attr("type", kind)
	p.Attr("name", name)
	if kind != "password" {
		p.Attr("value", value)
	}
	p.Flag("required", required)
	p.Raw(`></label>`)
}

// Option is one entry of a Select
type Option struct {
	Value string
	Label string
}

// Select renders a labelled drop-down with selected preselected
func Select(p *Printer, label, name, selected string, options []Option) {
	p.Raw(`<label>`)
	p.Text(label)
	p.Raw(`<select`)
	p.Attr("name", name)
	p.Raw(`>`)
	for _, o := range options {
		p.Raw(`<option`)
		p.Attr("value", o.Value)
		p.Flag("selected", o.Value == selected)
		p.Raw(`>`)
		p.Text(o.Label)
		p.Raw(`</option>`)
	}
	p.Raw(`</select></label>`)
}

// Checkbox renders a labelled checkbox submitting "true" when ticked
func Checkbox(p *Printer, label, name string, checked bool) {
	p.Raw(`<label><input type="checkbox" value="true"`)
	p.Attr("name", name)
	p.Flag("checked", checked)
	p.Raw(`>`)
	p.Text(label)
	p.Raw(`</label>`)
}

// Detail renders one term of a description list
func Detail(p *Printer, term, value string) {
	p.Element("dt", "", term)
	p.Element("dd", "", value)
}

// Form opens a POST form to action; the returned func closes it with a
// submit button
func Form(p *Printer, id, action, submit string) func() {
	p.Raw(`<form method="post"`)
	p.Attr("id", id)
	p.Attr("action", action)
	p.Raw(`>`)
	return func() {
		p.Raw(`<button type="submit">`)
		p.Text(submit)
		p.Raw(`</button></form>`)
	}
}
