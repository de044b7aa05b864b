package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須フィールドが不足しています"
		case "null_value":
			return "必須フィールドにnullは指定できません"
		case "duplicate_argument":
			return "引数が重複しています"
		case "extra_argument":
			return "引数が多すぎます"
		case "unknown_field":
			return "未定義のフィールドです"
		case "unset_field":
			return "フィールドが未設定です"
		case "read_only":
			return "読み取り専用フィールドです"
		case "duplicate_field":
			return "フィールド名が重複しています"
		case "duplicate_schema":
			return "スキーマ名が重複しています"
		case "unresolved_ref":
			return "参照先のスキーマが見つかりません"
		case "nested_cycle":
			return "ネストが循環しています"
		case "constant_default":
			return "定数フィールドにはデフォルト値が必要です"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_format":
			return "形式が不正です"
		case "not_unique":
			return "値が重複しています"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "missing required field"
		case "null_value":
			return "null value for required field"
		case "duplicate_argument":
			return "duplicate argument"
		case "extra_argument":
			return "extra argument(s)"
		case "unknown_field":
			return "unknown field"
		case "unset_field":
			return "field is unset"
		case "read_only":
			return "field is read-only"
		case "duplicate_field":
			return "duplicate field name"
		case "duplicate_schema":
			return "duplicate schema name"
		case "unresolved_ref":
			return "unresolved record reference"
		case "nested_cycle":
			return "cyclic record nesting"
		case "constant_default":
			return "constant field requires a default value"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "invalid_enum":
			return "value not allowed"
		case "invalid_format":
			return "invalid format"
		case "not_unique":
			return "not a unique list of values"
		case "parse_error":
			return "parse error"
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

// T resolves a message for code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}
