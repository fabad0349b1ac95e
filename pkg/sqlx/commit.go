package sqlx

import (
	"github.com/docshelf/warden/pkg/logx"
)

// Commit finishes a transaction: rolls back when err is non-nil, commits
// otherwise, and returns the first error encountered.
func Commit(logger logx.Logger, tx *Tx, err error) error {
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			logger.Error(failedToRollback, rollbackErr)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		logger.Error(failedToCommit, err)
		return err
	}

	logger.Debug(committed)
	return nil
}
