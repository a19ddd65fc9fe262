package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/model"
)

// DefaultEnvFile is read from the working directory when SALESDAY_ENV_FILE is unset
const DefaultEnvFile = ".env"

// EnvFilePath returns the dotenv file to load
func EnvFilePath() string {
	if path := os.Getenv("SALESDAY_ENV_FILE"); path != "" {
		return path
	}
	return DefaultEnvFile
}

// LoadEnvFile exports the variables of a dotenv file into the process
// environment so flag env sources see them. Variables already set win.
// A missing default file is not an error; a missing explicit file is.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && path == DefaultEnvFile {
		return nil
	}
	return goerr.Wrap(err, "failed to load env file", goerr.V("path", path), goerr.T(model.ErrTagConfig))
}
