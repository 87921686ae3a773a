// Package status reports free space on the volume holding a directory.
package status

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
)

// Snapshot is the usage of one volume at one moment.
type Snapshot struct {
	Path        string
	Mount       string
	FSType      string
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
	TakenAt     time.Time
}

// Take reads usage for the volume holding path.
func Take(path string) (Snapshot, error) {
	path = core.NormalizePath(path)
	u, err := disk.Usage(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("disk usage for %s: %w", path, err)
	}
	return Snapshot{
		Path:        path,
		Mount:       u.Path,
		FSType:      u.Fstype,
		Total:       u.Total,
		Free:        u.Free,
		Used:        u.Used,
		UsedPercent: u.UsedPercent,
		TakenAt:     time.Now(),
	}, nil
}

// Gained returns how much free space grew between two snapshots. Other
// processes writing to the volume can make it negative.
func Gained(before, after Snapshot) int64 {
	return int64(after.Free) - int64(before.Free)
}
