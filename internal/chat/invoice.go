package chat

import (
	"slices"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/reports"
	"ledger-assistant/internal/textparse"
)

func (t *turn) onInvoice(m InLedger, v InvoiceView, text string) InLedger {
	l := t.labels()
	if Classify(ScopeInvoice, text).Intent == IntentCancel {
		m.View = Home{}
		t.say(l.Cancelled)
		return m
	}

	d := v.Draft
	if d.Pending != nil {
		return t.resolveConfirmation(m, d, text)
	}

	switch d.Step {
	case StepCustomer:
		if text == "" {
			t.say(l.InvalidCustomer)
			break
		}
		d.Pending = &Confirmation{Kind: ConfirmCustomer, Text: text}
		t.say(i18n.F(l.ConfirmCustomer, text))

	case StepItems:
		cmd := Classify(ScopeInvoiceItems, text)
		switch cmd.Intent {
		case IntentPreview:
			t.say(reports.InvoicePreview(d.Items, d.Customer, m.Settings))
		case IntentDone:
			if len(d.Items) == 0 {
				t.say(l.NeedOneItem)
				break
			}
			d.Step = StepTerms
			t.say(l.EnterTerms)
		case IntentRemove:
			if cmd.N < 1 || cmd.N > len(d.Items) {
				t.say(l.NoSuchItem)
				break
			}
			d.Items = slices.Delete(slices.Clone(d.Items), cmd.N-1, cmd.N)
			t.say(i18n.F(l.RemovedItem, cmd.N))
		default:
			item, ok := textparse.ParseInvoiceItem(text)
			if !ok {
				t.say(l.ItemParseFailed)
				break
			}
			d.Pending = &Confirmation{Kind: ConfirmItem, Item: item}
			t.say(confirmItem(l, item))
		}

	case StepTerms:
		terms := text
		if Classify(ScopeInvoiceTerms, text).Intent == IntentSkip {
			terms = ""
		}
		d.Pending = &Confirmation{Kind: ConfirmTerms, Text: terms}
		t.say(confirmTerms(l, terms))

	default:
		d = InvoiceDraft{Step: StepCustomer}
		t.say(l.EnterInvoice)
	}

	m.View = InvoiceView{Draft: d}
	return m
}

func confirmItem(l *i18n.Labels, it core.InvoiceItem) string {
	return i18n.F(l.ConfirmItem, it.Description, it.Price.String(), it.GSTPercent.String())
}

func confirmTerms(l *i18n.Labels, terms string) string {
	if terms == "" {
		terms = l.NoTerms
	}
	return i18n.F(l.ConfirmTerms, terms)
}

func (t *turn) resolveConfirmation(m InLedger, d InvoiceDraft, text string) InLedger {
	l := t.labels()
	p := d.Pending
	intent := Classify(ScopeConfirm, text).Intent
	if intent == IntentSkip && p.Kind == ConfirmTerms && p.Text == "" {
		intent = IntentNo
	}

	switch intent {
	case IntentYes:
		d.Pending = nil
		switch p.Kind {
		case ConfirmCustomer:
			d.Customer = p.Text
			d.Step = StepItems
			t.say(l.EnterItemsHelp)
		case ConfirmItem:
			d.Items = append(slices.Clone(d.Items), p.Item)
			t.say(i18n.F(l.AddedItem, len(d.Items), p.Item.Description, p.Item.Price.String(), p.Item.GSTPercent.String()))
		case ConfirmTerms:
			d.Terms = p.Text
			return t.generateInvoice(m, d)
		}

	case IntentNo:
		d.Pending = nil
		switch p.Kind {
		case ConfirmCustomer:
			t.say(l.PromptCustomer)
		case ConfirmItem:
			t.say(l.PromptItem)
		case ConfirmTerms:
			t.say(l.PromptTerms)
		}

	default:
		switch p.Kind {
		case ConfirmCustomer:
			t.say(i18n.F(l.ConfirmCustomer, p.Text))
		case ConfirmItem:
			t.say(confirmItem(l, p.Item))
		case ConfirmTerms:
			t.say(confirmTerms(l, p.Text))
		}
	}

	m.View = InvoiceView{Draft: d}
	return m
}

// generateInvoice renders the confirmed draft and always leaves the wizard.
func (t *turn) generateInvoice(m InLedger, d InvoiceDraft) InLedger {
	l := t.labels()
	if !m.Settings.HasHeader() {
		if s, ok := t.loadSettings(m); ok {
			m.Settings = s
		}
		if !m.Settings.HasHeader() {
			t.say(l.EmptyStoreWarning)
		}
	}
	t.say(l.Generating)
	m.View = Home{}

	doc, err := t.e.gw.GenerateInvoiceDocument(t.ctx, core.InvoiceRequest{
		Customer:     core.InvoiceCustomer{Name: d.Customer},
		Items:        d.Items,
		PaymentTerms: d.Terms,
		Business:     m.Settings,
	})
	if err != nil {
		t.warn(err, "generateInvoiceDocument")
		t.say(l.InvoiceFail)
		return m
	}
	doc.Filename = core.InvoiceFilename(t.e.now().In(t.e.loc))
	if doc.ContentType == "" {
		doc.ContentType = "application/pdf"
	}
	t.attach(i18n.F(l.InvoiceReady, d.Customer, doc.Filename), &doc)
	return m
}
