package auth

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// GetAPIKey retrieves the Gemini API key from the GEMINI_API_KEY environment
// variable. During local development the config package loads .env files
// before this is called, so a key kept in .env arrives through the same path.
func GetAPIKey() (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		log.Debug().Msg("Using API key from environment variable")
		return key, nil
	}

	return "", fmt.Errorf("API key not found: set GEMINI_API_KEY in the environment or in a .env file")
}
