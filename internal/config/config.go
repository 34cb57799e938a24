// Package config parses the Kiba config file described in spec.md §6:
// a line-based format with "#" comments and four recognized keys. It
// is the only place config-file syntax is decided; spec.md treats
// config parsing as an external collaborator and specifies only the
// keys it must accept.
package config

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config is the fully-resolved, validated set of server knobs.
type Config struct {
	Bind   string
	CBound int
	Hasher string
	List   string
}

// Default matches the defaults documented in spec.md §6.
func Default() Config {
	return Config{
		Bind:   "127.0.0.1:6464",
		CBound: 128,
		Hasher: "default",
		List:   "vecdeque",
	}
}

// Load reads and validates a config file at path, starting from
// Default(). An empty path returns the defaults untouched, matching
// the CLI surface in spec.md §6 (the config path argument is optional).
func Load(path string, log *logrus.Logger) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := parseInto(&cfg, f, log); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseInto(cfg *Config, r io.Reader, log *logrus.Logger) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			key, value = line[:i], strings.TrimSpace(line[i+1:])
		}
		key = strings.ToLower(key)

		switch key {
		case "bind":
			if _, _, err := net.SplitHostPort(value); err != nil {
				return fmt.Errorf("config: line %d: bind requires a host:port value, got %q", lineNo, value)
			}
			cfg.Bind = value
		case "cbound":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("config: line %d: cbound must be a positive integer, got %q", lineNo, value)
			}
			cfg.CBound = n
		case "hasher":
			if value != "default" && value != "fnv" {
				return fmt.Errorf("config: line %d: hasher must be \"default\" or \"fnv\", got %q", lineNo, value)
			}
			cfg.Hasher = value
		case "list":
			if value != "vecdeque" && value != "linkedlist" {
				return fmt.Errorf("config: line %d: list must be \"vecdeque\" or \"linkedlist\", got %q", lineNo, value)
			}
			cfg.List = value
		default:
			if log != nil {
				log.WithField("key", key).WithField("line", lineNo).Warn("config: ignoring unknown key")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
