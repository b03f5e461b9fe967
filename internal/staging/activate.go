package staging

import (
	"fmt"
	"os"

	"github.com/lucass-carneiro/surge-stage/internal/logfields"
)

// BackupSuffix names the previous live library while a swap is in progress.
const BackupSuffix = ".old"

// swapIn moves pending over live. The live file is first renamed aside so a
// failed swap can be rolled back; a library still mapped by a running
// process can be renamed on every supported host but not always deleted,
// so a backup that cannot be removed is left behind and logged.
func (m *Manager) swapIn(pending, live string) error {
	backup := live + BackupSuffix
	if err := removeExisting(backup); err != nil {
		return fmt.Errorf("clearing stale backup %s: %w", backup, err)
	}

	hadLive := exists(live)
	if hadLive {
		if err := os.Rename(live, backup); err != nil {
			return fmt.Errorf("creating backup: %w", err)
		}
	}

	if err := os.Rename(pending, live); err != nil {
		if hadLive {
			if rbErr := os.Rename(backup, live); rbErr != nil {
				m.logger.Error("Rollback failed, live library left at backup path", logfields.Path(backup), logfields.Error(rbErr))
			}
		}
		return fmt.Errorf("installing %s: %w", pending, err)
	}

	if hadLive {
		if err := os.Remove(backup); err != nil {
			m.logger.Warn("Cannot remove previous library, leaving it in place", logfields.Path(backup), logfields.Error(err))
		}
	}
	return nil
}
