package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "element" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "nl":
		switch code {
		case "schema_load":
			return "schema kan niet geladen worden"
		case "unsupported_construct":
			return "niet-ondersteunde schemaconstructie"
		case "unknown_element":
			return "onbekend element"
		case "malformed_xml":
			return "geen welgevormde XML"
		case "required":
			return "verplicht element ontbreekt"
		case "too_many":
			return "element komt te vaak voor"
		case "out_of_order":
			return "element staat niet op de voorgeschreven plaats"
		case "unexpected_element":
			return "onverwacht element"
		case "unexpected_attribute":
			return "onverwacht attribuut"
		case "unexpected_text":
			return "onverwachte tekstinhoud"
		case "unknown_key":
			return "onbekende sleutel"
		case "invalid_value":
			return "ongeldige waarde"
		case "invalid_enum":
			return "waarde komt niet voor in de waardelijst"
		case "incomplete_record":
			return "record is onvolledig"
		case "lint":
			return "aandachtspunt"
		}
	default: // "en"
		switch code {
		case "schema_load":
			return "schema cannot be loaded"
		case "unsupported_construct":
			return "unsupported schema construct"
		case "unknown_element":
			return "unknown element"
		case "malformed_xml":
			return "not well-formed XML"
		case "required":
			return "required element missing"
		case "too_many":
			return "element occurs too often"
		case "out_of_order":
			return "element out of declared order"
		case "unexpected_element":
			return "unexpected element"
		case "unexpected_attribute":
			return "unexpected attribute"
		case "unexpected_text":
			return "unexpected text content"
		case "unknown_key":
			return "unknown key"
		case "invalid_value":
			return "invalid value"
		case "invalid_enum":
			return "value not in the value list"
		case "incomplete_record":
			return "record is incomplete"
		case "lint":
			return "advisory finding"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"nl").
func SetLanguage(lang string) {
	if lang != "nl" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
