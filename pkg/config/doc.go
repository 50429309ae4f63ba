// Package config loads settings structs from YAML files and the environment.
//
// Values are layered: the caller fills a struct with defaults, LoadFile
// overlays a YAML document (`yaml` tags) and Load overlays environment
// variables (`env` tags, parsed by github.com/caarlos0/env/v11 after an
// optional .env file is read with github.com/joho/godotenv). Anything not
// present in a layer keeps the value from the layer below.
//
//	s := defaults()
//	if path != "" {
//		if err := config.LoadFile(path, &s); err != nil {
//			return err
//		}
//	}
//	if err := config.Load(&s, config.WithPrefix("QRBATCH_")); err != nil {
//		return err
//	}
//
// Errors wrap the package sentinels (ErrParsingConfig, ErrReadingConfigFile,
// ErrLoadingEnvFile, ErrNilPointer) and can be matched with errors.Is.
package config
