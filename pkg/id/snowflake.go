// Package id provides the process-wide snowflake node used for primary keys.
package id

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func NewNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

var Module = fx.Module("id",
	fx.Provide(NewNode),
)
