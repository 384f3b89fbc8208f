package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogTranslator resolves messages from a loaded catalog and delegates
// unknown rules to the previous translator.
type catalogTranslator struct {
	messages map[string]string
	fallback Translator
}

func (t catalogTranslator) Message(rule string, data map[string]any) string {
	if msg, ok := t.messages[rule]; ok {
		return msg
	}
	if t.fallback != nil {
		return t.fallback.Message(rule, data)
	}
	return ""
}

// LoadCatalog installs a YAML message catalog mapping rule names to message
// templates, for example:
//
//	required: "{{field}} cannot be left empty"
//	minLength: "{{field}} needs at least {{min}} characters"
//
// Rules absent from the catalog fall back to the previously installed
// translator. Call it before compiling validators.
func LoadCatalog(data []byte) error {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("i18n: invalid catalog: %w", err)
	}
	SetTranslator(catalogTranslator{messages: m, fallback: currentTranslator})
	return nil
}

// LoadCatalogFile reads path and installs it via LoadCatalog.
func LoadCatalogFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return LoadCatalog(data)
}
