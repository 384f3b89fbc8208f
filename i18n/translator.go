package i18n

// Translator retrieves localized messages for rule names. data provides
// optional rule args for message templates (for example, "min" or "choices").
// An empty return means the translator has no entry for the rule, and the
// caller falls back to the rule's default message.
type Translator interface {
	Message(rule string, data map[string]any) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(rule string, data map[string]any) string {
	switch t.lang {
	case "ja":
		switch rule {
		case "required":
			return "{{field}}は必須です"
		case "string":
			return "{{field}}は文字列である必要があります"
		case "number":
			return "{{field}}は数値である必要があります"
		case "boolean":
			return "{{field}}は真偽値である必要があります"
		case "object":
			return "{{field}}はオブジェクトである必要があります"
		case "array":
			return "{{field}}は配列である必要があります"
		case "union":
			return "{{field}}に一致する型がありません"
		case "group":
			return "{{field}}に一致する条件がありません"
		}
	default: // "en"
		switch rule {
		case "required":
			return "the {{field}} field is required"
		case "string":
			return "the {{field}} field must be a string"
		case "number":
			return "the {{field}} field must be a number"
		case "boolean":
			return "the {{field}} field must be a boolean"
		case "object":
			return "the {{field}} field must be an object"
		case "array":
			return "the {{field}} field must be an array"
		case "union":
			return "no matching union member for the {{field}} field"
		case "group":
			return "no matching condition for the {{field}} field"
		}
	}
	return ""
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). Call it before compiling validators; validators read
// the current translator at report time.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given rule using the current Translator.
func T(rule string, data map[string]any) string {
	return currentTranslator.Message(rule, data)
}
