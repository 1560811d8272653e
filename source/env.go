package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/lixenwraith/params"
)

// EnvFileName is the dotenv file name looked up in the user and machine config directories
const EnvFileName = "environment"

// Environment implements params.EnvironmentAccessor.
// Process scope is the process environment; User and Machine scopes are
// dotenv files read once on first use.
type Environment struct {
	UserFile    string
	MachineFile string

	lookup func(string) (string, bool)

	once    sync.Once
	user    map[string]string
	machine map[string]string
	err     error
}

// NewEnvironment creates an environment for appName with the user scope at
// $XDG_CONFIG_HOME/<app>/environment (or ~/.config/<app>/environment) and the
// machine scope at /etc/<app>/environment.
func NewEnvironment(appName string) *Environment {
	userFile := ""
	if dir := userConfigDir(appName); dir != "" {
		userFile = filepath.Join(dir, EnvFileName)
	}
	return NewEnvironmentFiles(userFile, filepath.Join("/etc", appName, EnvFileName))
}

// NewEnvironmentFiles creates an environment with explicit dotenv files.
// An empty path leaves that scope empty.
func NewEnvironmentFiles(userFile, machineFile string) *Environment {
	return &Environment{
		UserFile:    userFile,
		MachineFile: machineFile,
		lookup:      os.LookupEnv,
	}
}

// LookupEnv implements params.EnvironmentAccessor
func (e *Environment) LookupEnv(key string, scope params.Scope) (string, bool) {
	switch scope {
	case params.ScopeProcess:
		return e.lookup(key)
	case params.ScopeUser:
		e.load()
		v, ok := e.user[key]
		return v, ok
	case params.ScopeMachine:
		e.load()
		v, ok := e.machine[key]
		return v, ok
	default:
		return "", false
	}
}

// Err reports a scope file that exists but could not be read.
// Missing files are not an error.
func (e *Environment) Err() error {
	e.load()
	return e.err
}

func (e *Environment) load() {
	e.once.Do(func() {
		var userErr, machineErr error
		e.user, userErr = readEnvFile(e.UserFile)
		e.machine, machineErr = readEnvFile(e.MachineFile)
		e.err = errors.Join(userErr, machineErr)
	})
}

// readEnvFile parses a dotenv file, treating a missing file as empty.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return map[string]string{}, fmt.Errorf("failed to read environment file '%s': %w", path, err)
	}
	return vars, nil
}

// userConfigDir returns the XDG config directory for appName
func userConfigDir(appName string) string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", appName)
	}
	return ""
}
