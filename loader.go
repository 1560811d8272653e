// FILE: lixenwraith/params/loader.go
package params

import (
	"fmt"
	"log/slog"
)

// Source represents a resolution stage, listed from lowest to highest precedence
type Source string

const (
	// SourceDefault represents declared default values
	SourceDefault Source = "default"
	// SourceExternal represents settings, connection strings and sections
	SourceExternal Source = "external"
	// SourceEnv represents environment variables
	SourceEnv Source = "env"
	// SourceCLI represents command-line tokens
	SourceCLI Source = "cli"
)

// Precedence lists the stages in the order they are applied; later stages override earlier ones.
var Precedence = []Source{SourceDefault, SourceExternal, SourceEnv, SourceCLI}

// resolver runs the four stages against one declaration.
// Each stage completes for every field before the next one begins.
type resolver struct {
	fields   []*Field
	table    *aliasTable
	settings SettingsStore
	conns    ConnectionStringStore
	sections SectionStore
	env      EnvironmentAccessor
	tagName  string
	logger   *slog.Logger
	report   *Report
}

// run applies all stages in precedence order. Only the external stage and a
// failing default setter can abort; the best-effort stages record warnings.
func (r *resolver) run(args []string) error {
	if err := r.loadDefaults(); err != nil {
		return err
	}
	if err := r.loadExternal(); err != nil {
		return err
	}
	r.loadEnv()
	r.loadCLI(args)
	return nil
}

// loadDefaults assigns every declared default verbatim
func (r *resolver) loadDefaults() error {
	for _, f := range r.fields {
		if !f.hasDefault {
			continue
		}
		if err := f.applyDefault(); err != nil {
			return declarationError(f.Name, "default rejected by setter: %v", err)
		}
		r.assigned(f, SourceDefault, "")
	}
	return nil
}

// loadExternal overlays values from the operator controlled stores.
// A malformed settings entry or an unusable section is fatal.
func (r *resolver) loadExternal() error {
	for _, f := range r.fields {
		switch f.External {
		case ExternalNone:
			continue

		case ExternalSettings:
			if r.settings == nil {
				continue
			}
			raw, ok := r.settings.Setting(f.ExternalKey)
			if !ok {
				continue
			}
			if err := f.coerceAssign(raw); err != nil {
				return &TrustedSourceError{Field: f.Name, Source: f.External, Key: f.ExternalKey, Err: err}
			}

		case ExternalConnectionString:
			if r.conns == nil {
				continue
			}
			value, ok := r.conns.ConnectionString(f.ExternalKey)
			if !ok {
				continue
			}
			if err := f.assignString(value); err != nil {
				return &TrustedSourceError{Field: f.Name, Source: f.External, Key: f.ExternalKey, Err: err}
			}

		case ExternalSection:
			if r.sections == nil {
				continue
			}
			doc, ok := r.sections.Section(f.ExternalKey)
			if !ok {
				continue
			}
			if err := f.assignDocument(doc, r.tagName); err != nil {
				return &TrustedSourceError{Field: f.Name, Source: f.External, Key: f.ExternalKey, Err: err}
			}

		default:
			return declarationError(f.Name, "unknown external source %d", int(f.External))
		}

		r.assigned(f, SourceExternal, f.External.String()+":"+f.ExternalKey)
	}
	return nil
}

// loadEnv overlays environment variables. Malformed values keep the prior value.
func (r *resolver) loadEnv() {
	if r.env == nil {
		return
	}
	for _, f := range r.fields {
		if f.EnvKey == "" {
			continue
		}
		raw, scope, ok := lookupEnv(r.env, f.EnvKey, f.EnvScope)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%s:%s", scope, f.EnvKey)
		if err := f.coerceAssign(raw); err != nil {
			r.warn(SourceEnv, f, key, raw, err)
			continue
		}
		r.assigned(f, SourceEnv, key)
	}
}

// lookupEnv resolves the scope policy. Empty values count as absent.
func lookupEnv(env EnvironmentAccessor, key string, scope Scope) (string, Scope, bool) {
	scopes := []Scope{scope}
	if scope == ScopeAny {
		scopes = anyScopeOrder
	}
	for _, s := range scopes {
		if v, ok := env.LookupEnv(key, s); ok && v != "" {
			return v, s, true
		}
	}
	return "", scope, false
}

// loadCLI applies tokens strictly in order. Later tokens override earlier
// assignments; toggles flip the current value each time they appear.
func (r *resolver) loadCLI(args []string) {
	for _, token := range args {
		kind, f, raw := r.table.match(token)
		switch kind {
		case tokenValue:
			if err := f.coerceAssign(raw); err != nil {
				r.warn(SourceCLI, f, token, raw, err)
				continue
			}
		case tokenToggle:
			if err := f.toggle(); err != nil {
				r.warn(SourceCLI, f, token, "", err)
				continue
			}
		default:
			r.report.Unmatched = append(r.report.Unmatched, token)
			r.logger.Debug("Ignoring unmatched argument", "token", token)
			continue
		}
		r.assigned(f, SourceCLI, token)
	}
}

func (r *resolver) assigned(f *Field, source Source, key string) {
	r.report.Origins[f.Name] = source
	r.logger.Debug("Parameter assigned", "field", f.Name, "source", source, "key", key)
}

func (r *resolver) warn(source Source, f *Field, key, raw string, err error) {
	w := Warning{Source: source, Field: f.Name, Key: key, Raw: raw, Err: err}
	r.report.Warnings = append(r.report.Warnings, w)
	r.logger.Warn("Ignoring malformed parameter override",
		"field", f.Name,
		"source", source,
		"key", key,
		"raw", raw,
		"error", err)
}
