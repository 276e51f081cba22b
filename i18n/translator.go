package i18n

// Translator retrieves the default message template for an Issue code.
// Templates may contain %{name} placeholders substituted at render time.
type Translator interface {
	Template(code string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Template(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "必須項目です"
		case "invalid_type":
			return "%{expected} 型が必要ですが %{actual} 型でした"
		case "coercion_failure":
			return "%{actual} を %{expected} に変換できません"
		case "unknown_key":
			return "未知のフィールドです"
		case "discriminator_missing":
			return "判別フィールド %{field} がありません"
		case "discriminator_unknown":
			return "フィールド %{field} は %{values} のいずれかである必要がありますが %{actual} でした"
		case "refine":
			return "不正な値です"
		}
	default: // "en"
		switch code {
		case "required":
			return "is required"
		case "invalid_type":
			return "expected type %{expected}, got %{actual}"
		case "coercion_failure":
			return "cannot coerce %{actual} into %{expected}"
		case "unknown_key":
			return "unknown field"
		case "discriminator_missing":
			return "missing discriminator field %{field}"
		case "discriminator_unknown":
			return "expected field %{field} to be one of %{values}, got %{actual}"
		case "refine":
			return "is invalid"
		}
	}
	return code
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
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches the template for the given code using the current Translator.
func T(code string) string { return currentTranslator.Template(code) }
