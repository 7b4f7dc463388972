package resources

import (
	_ "embed"

	"github.com/pkg/errors"
)

// ErrIconNotFound is returned when the build carries no icon data.
var ErrIconNotFound = errors.New("embedded icon is empty")

//go:embed icon.ico
var iconData []byte

// Icon returns the bytes of the embedded tray icon.
func Icon() ([]byte, error) {
	if len(iconData) == 0 {
		return nil, ErrIconNotFound
	}
	return iconData, nil
}
