package domain

// Photo is one captured frame and its converted copy, keyed by the session
// identifier of the iteration that took it.
type Photo struct {
	ID            string
	OriginalPath  string
	ConvertedPath string
	// URL is the converted photo's path relative to the public directory,
	// as referenced by the published script.
	URL string
}

// Iteration is the outcome of one capture, describe and publish pass.
type Iteration struct {
	ID          string
	Photo       *Photo
	Description string
}
