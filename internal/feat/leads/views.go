package leads

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/kozmoai/site/internal/web/components"
)

func formPage(snap Snapshot) g.Node {
	return components.Layout(
		components.PageConfig{
			Title:       "Get Started",
			Description: "Request access to KozmoAI and start building advanced AI agents.",
			ActivePath:  "/get-started",
		},
		h.Section(
			h.Class("container narrow get-started"),
			components.SectionTitle("", "Get Started with KozmoAI",
				"Fill out the form below to request access to our platform and start building advanced AI agents."),
			g.If(snap.State == StateFailed,
				components.Alert("error", "Something went wrong", snap.Error,
					h.Form(
						h.Method("post"),
						h.Action("/get-started/dismiss"),
						h.Button(h.Type("submit"), h.Class("btn btn-link"), g.Text("Dismiss")),
					),
				),
			),
			demoForm(snap),
		),
	)
}

func demoForm(snap Snapshot) g.Node {
	submitting := snap.State == StateSubmitting

	return h.Form(
		h.Class("lead-form"),
		h.Method("post"),
		h.Action("/get-started"),
		g.Attr("novalidate"),
		textField(FieldName, "Name", "text", "Your name", snap.Values.Name, snap.FieldError(FieldName)),
		textField(FieldEmail, "Email", "email", "your.email@example.com", snap.Values.Email, snap.FieldError(FieldEmail)),
		textField(FieldCompany, "Company (Optional)", "text", "Your company name", snap.Values.Company, snap.FieldError(FieldCompany)),
		h.Div(
			h.Class(fieldClass(snap.FieldError(FieldMessage))),
			h.Label(h.For(FieldMessage), g.Text("Message (Optional)")),
			h.Textarea(
				h.ID(FieldMessage),
				h.Name(FieldMessage),
				h.Rows("4"),
				h.Placeholder("Tell us about your use case"),
				g.Text(snap.Values.Message),
			),
			fieldError(snap.FieldError(FieldMessage)),
		),
		h.Div(
			h.Class("field field-checkbox"),
			h.Input(h.Type("hidden"), h.Name(subscribeMarker), h.Value("1")),
			h.Input(
				h.Type("checkbox"),
				h.ID(subscribeField),
				h.Name(subscribeField),
				g.If(snap.Values.WantsNewsletter(), h.Checked()),
			),
			h.Label(h.For(subscribeField), g.Text("Subscribe to newsletter")),
			h.P(h.Class("hint"), g.Text("Receive updates about KozmoAI features and releases")),
		),
		// Hidden from people; bots fill it in.
		h.Div(
			h.Class("hp"),
			g.Attr("aria-hidden", "true"),
			h.Input(h.Type("text"), h.Name(honeypotField), h.TabIndex("-1"), h.AutoComplete("off")),
		),
		h.Div(
			h.Class("form-actions"),
			h.Button(
				h.Type("submit"),
				h.Class("btn btn-primary"),
				g.If(submitting, h.Disabled()),
				g.If(submitting, g.Text("Submitting...")),
				g.If(!submitting, g.Text("Submit Request")),
			),
			h.Button(
				h.Type("submit"),
				h.Class("btn btn-ghost"),
				g.Attr("formaction", "/get-started/close"),
				g.Attr("formnovalidate"),
				g.Text("Cancel"),
			),
		),
	)
}

func textField(name, label, typ, placeholder, value, errMsg string) g.Node {
	return h.Div(
		h.Class(fieldClass(errMsg)),
		h.Label(h.For(name), g.Text(label)),
		h.Input(
			h.Type(typ),
			h.ID(name),
			h.Name(name),
			h.Placeholder(placeholder),
			h.Value(value),
			g.If(errMsg != "", g.Attr("aria-invalid", "true")),
		),
		fieldError(errMsg),
	)
}

func fieldClass(errMsg string) string {
	if errMsg != "" {
		return "field has-error"
	}
	return "field"
}

func fieldError(msg string) g.Node {
	if msg == "" {
		return nil
	}
	return h.P(h.Class("field-error"), g.Text(msg))
}

func successPage(delay time.Duration) g.Node {
	if delay <= 0 {
		delay = defaultAutoCloseDelay
	}
	return components.Layout(
		components.PageConfig{
			Title:        "Request submitted",
			ActivePath:   "/get-started",
			RefreshAfter: strconv.FormatFloat(delay.Seconds(), 'f', -1, 64),
			RefreshURL:   "/",
		},
		h.Section(
			h.Class("container narrow get-started"),
			components.Alert("success", "Thank You!",
				"Your request has been submitted successfully. We'll get back to you soon."),
			h.P(h.Class("muted"), g.Text("Taking you back to the home page...")),
		),
	)
}
