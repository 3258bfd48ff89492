package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
)

type keyType int

const (
	stringKey keyType = iota
	intKey
)

// keySpec describes one settable configuration key: its backing type,
// environment override, and how it maps onto Config.
type keySpec struct {
	typ    keyType
	env    string
	secret bool
	applyS func(*Config, string)
	applyI func(*Config, int)
	readS  func(Config) string
	readI  func(Config) int
}

var keySpecs = map[string]keySpec{
	"server.port": {
		typ:    intKey,
		env:    "ARCANA_SERVER_PORT",
		applyI: func(c *Config, v int) { c.Server.Port = v },
		readI:  func(c Config) int { return c.Server.Port },
	},
	"llm.base_url": {
		typ:    stringKey,
		env:    "ARCANA_LLM_BASE_URL",
		applyS: func(c *Config, v string) { c.LLM.BaseURL = v },
		readS:  func(c Config) string { return c.LLM.BaseURL },
	},
	"llm.api_key": {
		typ:    stringKey,
		env:    "ARCANA_LLM_API_KEY",
		secret: true,
		applyS: func(c *Config, v string) { c.LLM.APIKey = v },
		readS:  func(c Config) string { return c.LLM.APIKey },
	},
	"llm.model": {
		typ:    stringKey,
		env:    "ARCANA_LLM_MODEL",
		applyS: func(c *Config, v string) { c.LLM.Model = v },
		readS:  func(c Config) string { return c.LLM.Model },
	},
	"storage.data_dir": {
		typ:    stringKey,
		env:    "ARCANA_STORAGE_DATA_DIR",
		applyS: func(c *Config, v string) { c.Storage.DataDir = v },
		readS:  func(c Config) string { return c.Storage.DataDir },
	},
	"reading.narrative_timeout": {
		typ:    stringKey,
		env:    "ARCANA_READING_NARRATIVE_TIMEOUT",
		applyS: func(c *Config, v string) { c.Reading.NarrativeTimeout = v },
		readS:  func(c Config) string { return c.Reading.NarrativeTimeout },
	},
	"reading.retention_days": {
		typ:    intKey,
		env:    "ARCANA_READING_RETENTION_DAYS",
		applyI: func(c *Config, v int) { c.Reading.RetentionDays = v },
		readI:  func(c Config) int { return c.Reading.RetentionDays },
	},
	"log.level": {
		typ:    stringKey,
		env:    "ARCANA_LOG_LEVEL",
		applyS: func(c *Config, v string) { c.Log.Level = v },
		readS:  func(c Config) string { return c.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for key, spec := range keySpecs {
		switch spec.typ {
		case stringKey:
			v, ok, err := b.GetString(key)
			if err != nil {
				return fmt.Errorf("reading config key %q: %w", key, err)
			}
			if ok {
				spec.applyS(cfg, v)
			}
		case intKey:
			v, ok, err := b.GetInt(key)
			if err != nil {
				return fmt.Errorf("reading config key %q: %w", key, err)
			}
			if ok {
				spec.applyI(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, spec := range keySpecs {
		raw, ok := os.LookupEnv(spec.env)
		if !ok || raw == "" {
			continue
		}
		switch spec.typ {
		case stringKey:
			spec.applyS(cfg, raw)
		case intKey:
			v, err := strconv.Atoi(raw)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] %s=%q is not an integer, ignoring\n", spec.env, raw)
				continue
			}
			spec.applyI(cfg, v)
		}
	}
}

// ValidKeys returns the settable configuration keys in sorted order.
func ValidKeys() []string {
	keys := make([]string, 0, len(keySpecs))
	for k := range keySpecs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetKey writes one key to the persistent backend. The value is parsed
// according to the key's type.
func SetKey(key, value string) error {
	return setKeyWith(newFileBackend(), key, value)
}

func setKeyWith(b ConfigBackend, key, value string) error {
	spec, ok := keySpecs[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, ValidKeys())
	}
	switch spec.typ {
	case intKey:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("key %q expects an integer: %w", key, err)
		}
		return b.SetInt(key, v)
	default:
		return b.SetString(key, value)
	}
}

// KeyInfo is one row of the effective configuration.
type KeyInfo struct {
	Key   string
	Value string
}

// ShowAll renders the effective configuration as key/value pairs.
// Secret values are masked.
func ShowAll(cfg Config) []KeyInfo {
	infos := make([]KeyInfo, 0, len(keySpecs))
	for _, key := range ValidKeys() {
		spec := keySpecs[key]
		var val string
		switch spec.typ {
		case stringKey:
			val = spec.readS(cfg)
		case intKey:
			val = strconv.Itoa(spec.readI(cfg))
		}
		if spec.secret && val != "" {
			val = "********"
		}
		infos = append(infos, KeyInfo{Key: key, Value: val})
	}
	return infos
}
