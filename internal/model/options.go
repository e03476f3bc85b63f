package model

// DefaultRootPath prefixes every field path.
const DefaultRootPath = "root"

// Options configures the Builder. pkg/model builds them from functional
// options.
type Options struct {
	Labeler  func(string) string
	RootPath string
}

func defaultOptions() Options {
	return Options{
		Labeler:  DefaultLabeler,
		RootPath: DefaultRootPath,
	}
}
