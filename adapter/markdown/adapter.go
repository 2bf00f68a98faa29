// Package markdown parses llms.txt contents into the docstratum parsed
// model using a goldmark AST walk.
package markdown

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

type Adapter struct {
	logger *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(options ...Option) *Adapter {
	a := &Adapter{
		logger: zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a
}

// The parser configuration never changes and the goldmark parser is safe
// to share; actual parsing creates per-call state via Parse(reader).
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

const adapterName = "markdown"

func (a *Adapter) Name() string {
	return adapterName
}
