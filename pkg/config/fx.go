package config

import "go.uber.org/fx"

// Module provides the configuration. It starts out as Default(); the CLI
// reloads it in place from sqldesk.yaml once it has moved to the project
// directory, so consumers build formatters and highlighters from it at the
// time they run.
var Module = fx.Module("config", fx.Provide(Default))
