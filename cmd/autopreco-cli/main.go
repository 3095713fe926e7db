package main

import (
	"context"

	"autopreco-backend/cmd/autopreco-cli/commands"
	"autopreco-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	commands.ExecuteContext(context.Background())
}
