package utils

import (
	"os"
	"strconv"

	"github.com/platewise/recipe-backend/internal/logger"
)

// GetEnv returns the value of key, or defaultVal when it is unset.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		envDebug(log, key, "Environment variable not set, using default", "default", defaultVal)
		return defaultVal
	}
	envDebug(log, key, "Environment variable set", "value", val)
	return val
}

// GetEnvAsInt returns key parsed as an int, or defaultVal when it is unset
// or not an integer.
func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		envDebug(log, key, "Environment variable not set, using default", "default", defaultVal)
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		envDebug(log, key, "Environment variable is not an integer, using default", "raw", raw, "default", defaultVal, "error", err)
		return defaultVal
	}
	envDebug(log, key, "Environment variable set", "value", val)
	return val
}

func envDebug(log *logger.Logger, key, msg string, keysAndValues ...interface{}) {
	if log == nil {
		return
	}
	log.With("env_var", key).Debug(msg, keysAndValues...)
}
