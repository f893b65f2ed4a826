package install

import (
	"encoding/json"
	"fmt"

	xlog "github.com/twitchylinux/twlconf/internal/log"

	"github.com/rs/zerolog"
)

// Decode overlays the JSON document in data on the default configuration.
// Keys missing from data keep their default, unknown keys are ignored. On
// error the returned configuration is the default, never a partial merge.
func Decode(data []byte) (Configuration, error) {
	conf := Default()
	if err := json.Unmarshal(data, &conf); err != nil {
		return Default(), fmt.Errorf("decoding configuration: %w", err)
	}
	return conf, nil
}

// Load decodes a configuration sent by the frontend. Malformed input is
// logged and yields the default configuration.
func Load(logger zerolog.Logger, data []byte) Configuration {
	conf, err := Decode(data)
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "config.load_failed").
			Msg("error deserializing config from the frontend")
		return conf
	}
	logger.Info().
		Str("event", "config.loaded").
		Msg("deserialized config from the frontend")
	return conf
}

// LoadFromJSON is Load using the package's "config" component logger.
func LoadFromJSON(data []byte) Configuration {
	return Load(xlog.WithComponent("config"), data)
}
