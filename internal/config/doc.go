// Package config reads runtime settings from the environment.
//
// Values come from FIREWORKS_API_KEY, GEMINI_API_KEY and the IDX_* variables;
// unset or unparsable variables fall back to defaults. [LoadDotEnv] merges
// .env files first when the binary is not started with godotenv/autoload.
package config
