package jsontext

// Option configures Parse, in the style of simdjson-go's ParserOption.
type Option func(*config)

type config struct {
	bufHint int
}

// WithInitialCapacity hints the resulting document's approximate encoded
// size, to cut down on builder reallocation for large inputs.
func WithInitialCapacity(n int) Option {
	return func(c *config) { c.bufHint = n }
}
