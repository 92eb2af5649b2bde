package types

// Config holds the parameters for Store.Attach.
type Config struct {
	// DataDir is the directory holding the blob store files and the
	// scratch SQLite database. Created on attach if missing.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
