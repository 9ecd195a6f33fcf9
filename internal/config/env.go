package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
)

// loadEnvFiles loads each existing env file in order. Variables already in
// the environment are never overwritten, so earlier files take precedence.
func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load env file").
				WithContext("path", p).
				Build()
		}
		slog.Debug("Loaded environment variables", slog.String("path", p))
	}
	return nil
}
