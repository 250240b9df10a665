package utils

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

// InitI18NBundle registers the built-in messages and then every yaml file
// under `i18n.dir`, so that files could override or translate them.
func InitI18NBundle(defaults ...*i18n.Message) error {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	if err := bundle.AddMessages(language.English, defaults...); err != nil {
		return err
	}

	dir := viper.GetString("i18n.dir")
	if dir == "" {
		return nil
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}

	for _, f := range files {
		if _, err := bundle.LoadMessageFile(f); err != nil {
			return err
		}
	}

	return nil
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang, language.English.String())
}
