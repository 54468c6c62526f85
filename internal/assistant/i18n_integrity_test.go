package assistant_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/assistant"
	"github.com/tartampluch/go-assistant/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in each locale file, and that no locale carries unknown keys.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWelcome,
		config.TKeyPrompt,
		config.TKeyHello,
		config.TKeyGoodbye,
		config.TKeyContactAdded,
		config.TKeyContactExists,
		config.TKeyContactUpdated,
		config.TKeyContactMissing,
		config.TKeyContactDeleted,
		config.TKeyNoContacts,
		config.TKeyNoPhones,
		config.TKeyPhoneAdded,
		config.TKeyPhoneRemoved,
		config.TKeyBirthdayAdded,
		config.TKeyNoBirthday,
		config.TKeyNoBirthdays,
		config.TKeyNoUpcoming,
		config.TKeyImported,
		config.TKeyExported,
		config.TKeyCalendarWritten,
		config.TKeyCredentialsSaved,
		config.TKeyCommands,
		config.TKeyInvalidCommand,
		config.TKeyGiveMeArgs,
		config.TKeyArgsAnd,
		config.TKeyUnexpected,
		config.TKeyEvtSummary,
	}

	definedKeys := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load the locale file")

			var jsonMap map[string]any
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing", key)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, definedKeys[jsonKey], "Key '%s' exists in JSON but not in config.go", jsonKey)
			}
		})
	}
}

func TestNewBundle_LoadsSupportedLanguages(t *testing.T) {
	_, langs := assistant.NewBundle()

	assert.ElementsMatch(t, config.SupportedLanguages, langs)
}
