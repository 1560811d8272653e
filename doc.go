// File: lixenwraith/params/doc.go

// Package params populates configuration objects from ranked sources: declared
// defaults, external configuration stores, environment variables and
// command-line tokens, then runs the object's validation hook.
//
// Features:
//   - Explicit, typed field declarations (no struct tag reflection)
//   - Fixed precedence with source tracking per field
//   - Value arguments (--alias=value) and boolean toggles (alias)
//   - Case-insensitive enumerations and optional enumerations
//   - Malformed operator settings fail loudly; malformed env/CLI overrides are reported as warnings
//   - File backed stores (TOML, JSON, YAML) and scoped environments in package source
//
// Quick Start:
//
//	type Params struct {
//	    Port    int
//	    Verbose bool
//	}
//
//	func (p *Params) DeclareFields(d *params.Declaration) {
//	    params.Var(d, "Port", &p.Port).Alias("--p", "--port").Default(8080).Setting("Port").Env("APP_PORT")
//	    params.Var(d, "Verbose", &p.Verbose).Alias("verbose")
//	}
//
//	p, err := params.New[Params](params.NewBuilder().WithSettings(settings))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Precedence (highest to lowest):
//  1. Command-line tokens (--port=9090, verbose)
//  2. Environment variables (APP_PORT=9090), Process then User then Machine scope
//  3. External configuration (settings, connection strings, sections)
//  4. Declared defaults
//
// Toggle aliases negate the current value: giving the same toggle twice
// restores the value resolved by the lower stages.
//
// Source tracking (Report.Origin) is per declared field. A binding whose
// setter fans out to other members reports only under its own name.
//
// Thread Safety:
// Resolution is synchronous and keeps no shared state. A Builder may be used
// concurrently as long as each call targets its own object and the stores
// are not modified while resolving.
package params
