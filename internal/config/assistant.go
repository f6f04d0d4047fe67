package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AssistantSettings tunes the objection-handling assistant. The file is
// hot-reloaded so prompt iterations do not require a restart.
type AssistantSettings struct {
	SystemPrompt string  `mapstructure:"systemPrompt"`
	Model        string  `mapstructure:"model"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"maxTokens"`
}

const defaultSystemPrompt = `Eres un experto Appointment Setter y cerrador de ventas de alto ticket.
Tu objetivo es ayudar al usuario a manejar objeciones de clientes potenciales en DMs.

Instrucciones:
1. Proporciona respuestas persuasivas, empáticas y orientadas a la acción.
2. Mantén un tono profesional pero cercano, ideal para redes sociales (IG, LinkedIn).
3. Tus respuestas deben ser cortas y directas, fáciles de copiar y pegar.
4. Si el usuario te da una objeción, utiliza técnicas de ventas (como el "Feel, Felt, Found" o "Isolate the objection") para superarla.
5. Responde siempre en el mismo idioma que el usuario le pregunte (español por defecto).`

func DefaultAssistantSettings() AssistantSettings {
	return AssistantSettings{
		SystemPrompt: defaultSystemPrompt,
		Model:        "llama-3.3-70b-versatile",
		Temperature:  0.7,
		MaxTokens:    500,
	}
}

// AssistantSettingsHolder exposes the current settings behind an atomic so
// in-flight requests never observe a partially reloaded value.
type AssistantSettingsHolder struct {
	current atomic.Value // holds AssistantSettings
}

func NewAssistantSettingsHolder() (*AssistantSettingsHolder, error) {
	v := viper.New()

	v.SetConfigName("assistant")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/setter/config")
	v.AddConfigPath("/etc/setter")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SETTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultAssistantSettings()
	v.SetDefault("assistant.systemPrompt", defaults.SystemPrompt)
	v.SetDefault("assistant.model", defaults.Model)
	v.SetDefault("assistant.temperature", defaults.Temperature)
	v.SetDefault("assistant.maxTokens", defaults.MaxTokens)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var settings AssistantSettings
	if err := v.UnmarshalKey("assistant", &settings); err != nil {
		return nil, err
	}
	if err := validateAssistantSettings(settings); err != nil {
		return nil, err
	}

	holder := &AssistantSettingsHolder{}
	holder.current.Store(settings)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated AssistantSettings
		if err := v.UnmarshalKey("assistant", &updated); err != nil {
			log.Printf("[assistant-config] reload failed: %v", err)
			return
		}
		if err := validateAssistantSettings(updated); err != nil {
			log.Printf("[assistant-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[assistant-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *AssistantSettingsHolder) Get() AssistantSettings {
	return h.current.Load().(AssistantSettings)
}

// Store swaps the active settings. Used by the reload watcher and tests.
func (h *AssistantSettingsHolder) Store(s AssistantSettings) {
	h.current.Store(s)
}

func validateAssistantSettings(s AssistantSettings) error {
	if strings.TrimSpace(s.SystemPrompt) == "" {
		return errors.New("assistant.systemPrompt cannot be empty")
	}
	if strings.TrimSpace(s.Model) == "" {
		return errors.New("assistant.model cannot be empty")
	}
	if s.MaxTokens <= 0 {
		return errors.New("assistant.maxTokens must be positive")
	}
	return nil
}
