package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides the values substituted for {name} placeholders in the
// message template (for example "name", "value" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var messages = map[string]map[string]string{
	"en": {
		"invalid_type":     "Invalid {name}. Must be {expected}",
		"invalid_argument": "Invalid {name}: {value}",
		"required":         "No {name} specified",
		"no_default":       "No default value for {name}",
		"unknown_key":      "'{name}' has no attribute '{key}'",
		"too_small":        "Invalid {name} {value}. Must be at least {min}",
		"too_big":          "Invalid {name} {value}. Must be at most {max}",
		"too_long":         "{name} is too long. Max allowed is {max}",
		"pattern":          "Invalid {name} \"{value}\". Must match {pattern}",
		"invalid_enum":     "Invalid {name}: {value}. Must be one of {accepted}",
		"const_mismatch":   "Trying to assign {value} to the constant {expected}",
		"no_match":         "The value does not match any type",
		"reserved_name":    "{name} must not be in {reserved}",
		"not_multiple":     "Invalid {name} {value}. Must be a multiple of {multiple}",
		"not_positive":     "Invalid {name} {value}. Must be positive",
		"rewrap":           "Unsupported update on already constructed {name}",
		"parse_error":      "parse error",
		"duplicate_key":    "key '{key}' duplicated",
	},
	"ja": {
		"invalid_type":     "{name} が不正です。{expected} である必要があります",
		"invalid_argument": "{name} が不正です: {value}",
		"required":         "{name} が指定されていません",
		"no_default":       "{name} にはデフォルト値がありません",
		"unknown_key":      "'{name}' に属性 '{key}' はありません",
		"too_small":        "{name} {value} が不正です。{min} 以上である必要があります",
		"too_big":          "{name} {value} が不正です。{max} 以下である必要があります",
		"too_long":         "{name} が長すぎます。最大 {max} です",
		"pattern":          "{name} \"{value}\" が不正です。{pattern} に一致する必要があります",
		"invalid_enum":     "{name} が不正です: {value}。{accepted} のいずれかである必要があります",
		"const_mismatch":   "定数 {expected} に {value} は代入できません",
		"no_match":         "値がどの型にも一致しません",
		"reserved_name":    "{name} は {reserved} 以外である必要があります",
		"not_multiple":     "{name} {value} が不正です。{multiple} の倍数である必要があります",
		"not_positive":     "{name} {value} が不正です。正の値である必要があります",
		"rewrap":           "構築済みの {name} は更新できません",
		"parse_error":      "解析エラー",
		"duplicate_key":    "キー '{key}' が重複しています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tpl, ok := messages[t.lang][code]
	if !ok {
		tpl, ok = messages["en"][code]
	}
	if !ok {
		return code
	}
	return Format(tpl, data)
}

// Format substitutes {key} placeholders in tpl. Unknown placeholders are
// left untouched.
func Format(tpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tpl, "{") {
		return tpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
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

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
