// Package file implements the repositories on flat JSON state files.
//
// Every mutation rewrites the whole state file before returning, so the
// file on disk always reflects the last successful operation. A state
// file that cannot be parsed at startup is abandoned and the store
// starts empty; the broken file is overwritten by the next mutation.
package file

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"go.opentelemetry.io/otel"

	apperrors "plotweaver/pkg/errors"
	"plotweaver/pkg/metrics"
)

var tracer = otel.Tracer("file")

// readState loads the JSON state at path into v.
// A missing file is reported as fs.ErrNotExist; unreadable, empty or
// unparseable content is reported as a persistence corruption error.
func readState(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return apperrors.Wrap(err, apperrors.CodePersistenceCorrupt, "state file unreadable").WithDetail(path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return apperrors.New(apperrors.CodePersistenceCorrupt, "state file empty").WithDetail(path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.Wrap(err, apperrors.CodePersistenceCorrupt, "state file unparseable").WithDetail(path)
	}
	return nil
}

// writeState marshals v and rewrites the state file at path.
// The caller must hold the store's write lock.
func writeState(name, path string, v any) error {
	start := time.Now()

	data, err := json.MarshalIndent(v, "", "  ")
	if err == nil {
		err = os.WriteFile(path, data, 0644)
	}

	metrics.StoreWriteDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreWriteTotal.WithLabelValues(name, "error").Inc()
		return apperrors.Wrap(err, apperrors.CodePersistenceFailed, "failed to write state file").WithDetail(path)
	}
	metrics.StoreWriteTotal.WithLabelValues(name, "success").Inc()
	return nil
}
