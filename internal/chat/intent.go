package chat

import (
	"regexp"
	"strconv"
	"strings"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
)

// Intent is what a line of user text means in the scope it arrived in.
type Intent int

const (
	IntentText Intent = iota // no fixed phrase matched
	IntentExit
	IntentInventory
	IntentSummary
	IntentCreditors
	IntentPayables
	IntentSettings
	IntentInvoice
	IntentRefresh
	IntentYes
	IntentNo
	IntentSkip
	IntentCancel
	IntentShow
	IntentPreview
	IntentDone
	IntentRemove
	IntentNext
	IntentPrev
	IntentPage
	IntentEnglish
	IntentHindi
)

// Scope selects the phrase table used to classify text.
type Scope int

const (
	ScopeHome Scope = iota
	ScopeView
	ScopeDrillDown
	ScopeSettings
	ScopeSettingsConfirm
	ScopeInvoice
	ScopeInvoiceItems
	ScopeInvoiceTerms
	ScopeConfirm
	ScopeLanguage
)

// Command is a classified line. N carries the number of "page N" and "remove N".
type Command struct {
	Intent Intent
	N      int
}

type phrase struct {
	intent  Intent
	pattern *regexp.Regexp
}

func p(intent Intent, pattern string) phrase {
	return phrase{intent: intent, pattern: regexp.MustCompile(`(?i)^(?:` + pattern + `)$`)}
}

var (
	exitPhrase   = p(IntentExit, `ledger|बही[ -]?खाता`)
	yesPhrase    = p(IntentYes, `yes|y|haan|हाँ|ha|ok`)
	noPhrase     = p(IntentNo, `no|n|नहीं|nai`)
	cancelPhrase = p(IntentCancel, `cancel`)
	skipPhrase   = p(IntentSkip, `skip`)
)

var phrases = map[Scope][]phrase{
	ScopeHome: {
		exitPhrase,
		p(IntentInventory, `inventory|इन्वेंटरी`),
		p(IntentSummary, `summary|हिसाब[ -]?किताब`),
		p(IntentCreditors, `creditors?|देनदार`),
		p(IntentPayables, `payables?|लेनदार`),
		p(IntentSettings, `settings?|सेटिंग्स`),
		p(IntentInvoice, `create\s+invoice|invoice|bill|बिल`),
		p(IntentRefresh, `refresh`),
	},
	ScopeView: {exitPhrase},
	ScopeDrillDown: {
		p(IntentNext, `next`),
		p(IntentPrev, `prev`),
		p(IntentPage, `page\s+(\d+)`),
	},
	ScopeSettings: {p(IntentShow, `show`)},
	ScopeSettingsConfirm: {
		yesPhrase,
		p(IntentNo, `no|n|nah|नहीं|nai`),
	},
	ScopeInvoice: {cancelPhrase},
	ScopeInvoiceItems: {
		p(IntentPreview, `preview`),
		p(IntentDone, `done`),
		p(IntentRemove, `remove\s+(\d+)`),
	},
	ScopeInvoiceTerms: {skipPhrase},
	ScopeConfirm:      {yesPhrase, noPhrase, skipPhrase},
	ScopeLanguage: {
		p(IntentEnglish, `en|eng|english`),
		p(IntentHindi, `hi|hindi|हिंदी|हिन्दी`),
	},
}

// Classify matches trimmed text against the phrase table of scope.
func Classify(scope Scope, text string) Command {
	text = strings.TrimSpace(text)
	for _, ph := range phrases[scope] {
		m := ph.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		cmd := Command{Intent: ph.intent}
		if len(m) > 1 {
			cmd.N, _ = strconv.Atoi(m[1])
		}
		return cmd
	}
	return Command{Intent: IntentText}
}

// LanguageOf maps a language intent to its catalog.
func LanguageOf(in Intent) (i18n.Lang, bool) {
	switch in {
	case IntentEnglish:
		return i18n.English, true
	case IntentHindi:
		return i18n.Hindi, true
	}
	return "", false
}

var settingField = regexp.MustCompile(`(?i)^(store name|name|store address|address|gst|gst number|contact|contact number)\s*[:\-]\s*(.+)$`)

var settingAliases = map[string]core.SettingKey{
	"store name":     core.SettingStoreName,
	"name":           core.SettingStoreName,
	"store address":  core.SettingStoreAddress,
	"address":        core.SettingStoreAddress,
	"gst":            core.SettingStoreGST,
	"gst number":     core.SettingStoreGST,
	"contact":        core.SettingStoreContact,
	"contact number": core.SettingStoreContact,
}

// ParseSettingField reads "field: value" using the known field aliases.
func ParseSettingField(text string) (core.SettingKey, string, bool) {
	m := settingField.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", false
	}
	key, ok := settingAliases[strings.ToLower(strings.TrimSpace(m[1]))]
	if !ok {
		return "", "", false
	}
	return key, strings.TrimSpace(m[2]), true
}
