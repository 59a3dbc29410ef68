package command

import "context"

type Client interface {
	HandleCommands(ctx context.Context) error
}
