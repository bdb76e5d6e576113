package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(dbCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(fmtCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(highlightCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(initCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(keywordsCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(recentCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(runCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(scriptCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(splitCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(tablesCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
