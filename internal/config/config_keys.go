// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the "config" command, where settings are addressed
// by dotted keys (e.g., "resolve.timeout").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". Defaults only apply
// when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"python.path",
		"resolve.script_api", "resolve.script_lib",
		"resolve.timeout", "resolve.retry_interval",
		"scripting.enabled",
		"mediapool.clip_limit",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "python.path":
		return c.PythonPath(), nil
	case "resolve.script_api":
		return c.Resolve.ScriptAPI, nil
	case "resolve.script_lib":
		return c.Resolve.ScriptLib, nil
	case "resolve.timeout":
		return c.Timeout().String(), nil
	case "resolve.retry_interval":
		return c.RetryInterval().String(), nil
	case "scripting.enabled":
		return strconv.FormatBool(c.ScriptingEnabled()), nil
	case "mediapool.clip_limit":
		return strconv.Itoa(c.ClipLimit()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "python.path":
		c.Python.Path = value
	case "resolve.script_api":
		c.Resolve.ScriptAPI = value
	case "resolve.script_lib":
		c.Resolve.ScriptLib = value
	case "resolve.timeout":
		if err := validDuration(key, value); err != nil {
			return err
		}
		c.Resolve.Timeout = value
	case "resolve.retry_interval":
		if err := validDuration(key, value); err != nil {
			return err
		}
		c.Resolve.RetryInterval = value
	case "scripting.enabled":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: scripting.enabled must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Scripting.Enabled = &b
	case "mediapool.clip_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinClipLimit || n > MaxClipLimit {
			return fmt.Errorf("%w: mediapool.clip_limit must be an integer between %d and %d",
				ErrInvalidValue, MinClipLimit, MaxClipLimit)
		}
		c.MediaPool.ClipLimit = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		m[k], _ = c.Get(k)
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "python.path":
		return c.Python.Path != ""
	case "resolve.script_api":
		return c.Resolve.ScriptAPI != ""
	case "resolve.script_lib":
		return c.Resolve.ScriptLib != ""
	case "resolve.timeout":
		return c.Resolve.Timeout != ""
	case "resolve.retry_interval":
		return c.Resolve.RetryInterval != ""
	case "scripting.enabled":
		return c.Scripting.Enabled != nil
	case "mediapool.clip_limit":
		return c.MediaPool.ClipLimit != nil
	default:
		return false
	}
}
