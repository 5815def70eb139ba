package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "property" or "kind").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "missing_expression":
			msg = "パターンに正規表現がありません"
		case "invalid_rule":
			msg = "ルールにプロパティ名がありません"
		case "parse_error":
			msg = "ルールファイルの解析エラー"
		case "unknown_format":
			msg = "未対応のファイル形式です"
		}
	default: // "en"
		switch code {
		case "missing_expression":
			msg = "pattern component has no expression"
		case "invalid_rule":
			msg = "rule has no property name"
		case "parse_error":
			msg = "rule file parse error"
		case "unknown_format":
			msg = "unsupported rule file format"
		}
	}
	if msg == "" {
		return code
	}
	if p := data["property"]; p != "" {
		return msg + " (" + p + ")"
	}
	if d := strings.TrimSpace(data["detail"]); d != "" {
		return msg + ": " + d
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). It is safe to call while messages are being produced.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
