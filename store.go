package params

import "os"

// SettingsStore reads operator controlled key/value settings.
type SettingsStore interface {
	Setting(key string) (string, bool)
}

// ConnectionStringStore reads named connection strings.
type ConnectionStringStore interface {
	ConnectionString(key string) (string, bool)
}

// SectionStore reads named section documents.
type SectionStore interface {
	Section(key string) (any, bool)
}

// EnvironmentAccessor reads an environment variable in a single scope.
// ScopeAny is resolved by the caller and never passed in.
type EnvironmentAccessor interface {
	LookupEnv(key string, scope Scope) (string, bool)
}

// SettingsMap is an in-memory SettingsStore.
type SettingsMap map[string]string

func (m SettingsMap) Setting(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ConnectionStringMap is an in-memory ConnectionStringStore.
type ConnectionStringMap map[string]string

func (m ConnectionStringMap) ConnectionString(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// SectionMap is an in-memory SectionStore.
type SectionMap map[string]any

func (m SectionMap) Section(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvironmentMap is an in-memory EnvironmentAccessor keyed by scope.
type EnvironmentMap map[Scope]map[string]string

func (m EnvironmentMap) LookupEnv(key string, scope Scope) (string, bool) {
	vars, ok := m[scope]
	if !ok {
		return "", false
	}
	v, ok := vars[key]
	return v, ok
}

// ProcessEnvironment reads the process environment; other scopes are empty.
type ProcessEnvironment struct{}

func (ProcessEnvironment) LookupEnv(key string, scope Scope) (string, bool) {
	if scope != ScopeProcess {
		return "", false
	}
	return os.LookupEnv(key)
}
