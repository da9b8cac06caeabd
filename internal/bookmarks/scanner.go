package bookmarks

import "context"

// LocalFile is one file found in an imported local folder.
type LocalFile struct {
	Name string
	Path string
}

// Scanner lists the files of a local folder. Implementations must honour ctx cancellation and
// report failures such as a missing folder or denied permission as errors.
type Scanner interface {
	Scan(ctx context.Context, path string) ([]LocalFile, error)
}

var placeholderFiles = []string{"Document1.pdf", "Report.pdf", "Manual.pdf"}

// PlaceholderScanner does not touch the file system. It reports the same three PDF files for
// every folder.
type PlaceholderScanner struct{}

func (PlaceholderScanner) Scan(ctx context.Context, path string) ([]LocalFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files := make([]LocalFile, 0, len(placeholderFiles))
	for _, name := range placeholderFiles {
		files = append(files, LocalFile{Name: name, Path: path + "/" + name})
	}
	return files, nil
}
