package mock

import (
	"context"
	"io/ioutil"

	"github.com/rs/zerolog"
)

// Context with a discarding logger attached, so log.Ctx(ctx) calls are exercised in tests
func Context(ctx context.Context) context.Context {
	logger := zerolog.New(ioutil.Discard).Level(zerolog.DebugLevel)
	return logger.WithContext(ctx)
}
