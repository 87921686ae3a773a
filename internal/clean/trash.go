package clean

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Bios-Marcel/wastebasket/v2"
)

// ErrTrashUnavailable is returned by Put when no trash facility exists.
var ErrTrashUnavailable = errors.New("trash is not available on this system")

// Trash moves a directory somewhere it can be recovered from.
type Trash interface {
	// Put moves the file or directory at the absolute path src to trash.
	Put(src string) error
}

// TrashCapability records, once per process, whether a recoverable-delete
// facility exists. It is passed explicitly to the Deleter.
type TrashCapability struct {
	trash Trash
}

// NewTrashCapability wraps t; a nil t means no trash is available.
func NewTrashCapability(t Trash) TrashCapability {
	return TrashCapability{trash: t}
}

// NoTrash is the capability of a system without a trash facility.
func NoTrash() TrashCapability {
	return TrashCapability{}
}

// basket is the system trash: the freedesktop trash on Linux and BSD (the
// home trash, or $topdir/.Trash-$uid for other volumes), ~/.Trash on macOS
// and the recycle bin on Windows.
type basket struct{}

func (basket) Put(src string) error {
	return wastebasket.Trash(src)
}

// DetectTrash checks for the platform trash. Call it once at startup.
func DetectTrash() TrashCapability {
	switch runtime.GOOS {
	case "windows", "darwin":
	default:
		// The freedesktop home trash lives under the data home.
		if os.Getenv("XDG_DATA_HOME") == "" {
			if _, err := os.UserHomeDir(); err != nil {
				return NoTrash()
			}
		}
	}
	return NewTrashCapability(basket{})
}

// Available reports whether Put can be used.
func (c TrashCapability) Available() bool {
	return c.trash != nil
}

// Put moves src to trash.
func (c TrashCapability) Put(src string) error {
	if c.trash == nil {
		return ErrTrashUnavailable
	}
	if err := c.trash.Put(src); err != nil {
		return fmt.Errorf("move to trash: %w", err)
	}
	return nil
}
