package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"mm:ss or minutes": {
		"pt": "mm:ss ou minutos",
		"es": "mm:ss o minutos",
		"ru": "мм:сс или минуты",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
		"ru": "Пауза",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Add": {
		"pt": "Adicionar",
		"es": "Añadir",
		"ru": "Добавить",
	},
	"Start all": {
		"pt": "Iniciar todos",
		"es": "Iniciar todos",
		"ru": "Запустить все",
	},
	"Pause all": {
		"pt": "Pausar todos",
		"es": "Pausar todos",
		"ru": "Приостановить все",
	},
	"Burned out": {
		"pt": "Apagada",
		"es": "Consumida",
		"ru": "Догорел",
	},
	"About TorchTimer": {
		"pt": "Sobre o TorchTimer",
		"es": "Acerca de TorchTimer",
		"ru": "О TorchTimer",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("TORCHTIMER_LANG")); forcedLang != "" {
		log.Printf("TORCHTIMER_LANG is set to: '%s'", forcedLang)
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		locale := userLocales[0]
		if strings.HasPrefix(locale, "pt") {
			lang = "pt"
		} else if strings.HasPrefix(locale, "es") {
			lang = "es"
		} else if strings.HasPrefix(locale, "ru") {
			lang = "ru"
		} else {
			lang = "en"
		}
	} else {
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

func GetLang() string {
	return lang
}
