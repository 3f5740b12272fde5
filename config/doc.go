// Package config turns configuration sources into strata value providers.
//
// Every key becomes a strata.Name token, so a service can depend on a single
// setting the same way it depends on any other id token:
//
//	providers, err := config.FromEnvFiles([]string{".env"})
//	root, err := strata.New(strata.WithProviders(providers...))
//	dsn, err := config.String(root, "DB_DSN")
//
// YAML documents are flattened to dotted keys: a "db" mapping holding "host"
// becomes the token strata.Name("db.host").
package config
