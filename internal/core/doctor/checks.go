package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/kv"
	"github.com/colonyops/todos/internal/core/task"
)

// ConfigCheck validates the configuration file and its values.
type ConfigCheck struct {
	Config     *config.Config
	ConfigPath string
}

func (c ConfigCheck) Name() string { return "Configuration" }

func (c ConfigCheck) Run(_ context.Context, _ bool) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.ConfigPath); {
	case c.ConfigPath == "":
		result.Items = append(result.Items, CheckItem{Label: "Config file", Status: StatusPass, Detail: "using defaults"})
	case errors.Is(err, os.ErrNotExist):
		result.Items = append(result.Items, CheckItem{Label: "Config file", Status: StatusPass, Detail: "not found, using defaults"})
	case err != nil:
		result.Items = append(result.Items, CheckItem{Label: "Config file", Status: StatusFail, Detail: err.Error()})
	default:
		result.Items = append(result.Items, CheckItem{Label: "Config file", Status: StatusPass, Detail: c.ConfigPath})
	}

	if err := c.Config.ValidateDeep(c.ConfigPath); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Items = append(result.Items, CheckItem{Label: fe.Field, Status: StatusFail, Detail: fe.Err.Error()})
			}
		} else {
			result.Items = append(result.Items, CheckItem{Label: "Values", Status: StatusFail, Detail: err.Error()})
		}
	} else {
		result.Items = append(result.Items, CheckItem{Label: "Values", Status: StatusPass})
	}

	for _, w := range c.Config.Warnings() {
		result.Items = append(result.Items, CheckItem{Label: w.Item, Status: StatusWarn, Detail: w.Message})
	}

	return result
}

// DataDirCheck verifies the data directory exists and is writable.
type DataDirCheck struct {
	Dir string
}

func (c DataDirCheck) Name() string { return "Data Directory" }

func (c DataDirCheck) Run(_ context.Context, autofix bool) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(c.Dir)
	switch {
	case errors.Is(err, os.ErrNotExist) && autofix:
		if err := os.MkdirAll(c.Dir, 0o755); err != nil {
			result.Items = append(result.Items, CheckItem{Label: c.Dir, Status: StatusFail, Detail: err.Error()})
			return result
		}
		result.Items = append(result.Items, CheckItem{Label: c.Dir, Status: StatusPass, Detail: "created"})
		return result
	case errors.Is(err, os.ErrNotExist):
		result.Items = append(result.Items, CheckItem{Label: c.Dir, Status: StatusWarn, Detail: "does not exist", Fixable: true})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{Label: c.Dir, Status: StatusFail, Detail: err.Error()})
		return result
	case !info.IsDir():
		result.Items = append(result.Items, CheckItem{Label: c.Dir, Status: StatusFail, Detail: "not a directory"})
		return result
	}

	probe, err := os.CreateTemp(c.Dir, ".doctor-*")
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: c.Dir, Status: StatusFail, Detail: "not writable"})
		return result
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	result.Items = append(result.Items, CheckItem{Label: c.Dir, Status: StatusPass, Detail: "writable"})
	return result
}

// StorageCheck reads the persisted task list directly from the backend and
// reports payloads the task list would discard on load.
type StorageCheck struct {
	Backend config.Backend
	KV      kv.KV
	Key     string

	// Now stamps backup keys. Defaults to time.Now.
	Now func() time.Time
}

func (c StorageCheck) Name() string { return "Storage" }

func (c StorageCheck) Run(ctx context.Context, autofix bool) Result {
	result := Result{Name: c.Name()}
	result.Items = append(result.Items, CheckItem{Label: "Backend", Status: StatusPass, Detail: string(c.Backend)})

	tasks, err := kv.Typed[[]task.Task](c.KV).Get(ctx, c.Key)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		result.Items = append(result.Items, CheckItem{Label: "Task list", Status: StatusPass, Detail: "nothing saved yet"})
		return result
	case errors.Is(err, kv.ErrMalformed) && autofix:
		backup, ferr := c.quarantine(ctx)
		if ferr != nil {
			result.Items = append(result.Items, CheckItem{Label: "Task list", Status: StatusFail, Detail: ferr.Error()})
			return result
		}
		result.Items = append(result.Items, CheckItem{Label: "Task list", Status: StatusPass, Detail: "malformed payload moved to " + backup})
		return result
	case errors.Is(err, kv.ErrMalformed):
		result.Items = append(result.Items, CheckItem{
			Label:   "Task list",
			Status:  StatusFail,
			Detail:  "malformed payload, tasks load as an empty list",
			Fixable: true,
		})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{Label: "Task list", Status: StatusFail, Detail: err.Error()})
		return result
	}

	result.Items = append(result.Items, CheckItem{Label: "Task list", Status: StatusPass, Detail: fmt.Sprintf("%d task(s)", len(tasks))})

	if dropped := countUnloadable(tasks); dropped > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Records",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d record(s) without a unique id are skipped on load", dropped),
		})
	}

	return result
}

// quarantine copies the raw payload to a backup key and removes the original
// so the next load starts from an empty list.
func (c StorageCheck) quarantine(ctx context.Context) (string, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	raw, err := c.KV.Get(ctx, c.Key)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	backup := fmt.Sprintf("%s.malformed-%s", c.Key, now().UTC().Format("20060102T150405"))
	if err := c.KV.Set(ctx, backup, raw); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := c.KV.Delete(ctx, c.Key); err != nil {
		return "", fmt.Errorf("remove payload: %w", err)
	}
	return backup, nil
}

func countUnloadable(tasks []task.Task) int {
	seen := make(map[string]struct{}, len(tasks))
	n := 0
	for _, t := range tasks {
		if t.ID == "" {
			n++
			continue
		}
		if _, dup := seen[t.ID]; dup {
			n++
			continue
		}
		seen[t.ID] = struct{}{}
	}
	return n
}

// LogFileCheck verifies the log file directory is usable.
type LogFileCheck struct {
	Path string
}

func (c LogFileCheck) Name() string { return "Logging" }

func (c LogFileCheck) Run(_ context.Context, _ bool) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(filepath.Dir(c.Path))
	switch {
	case err != nil:
		result.Items = append(result.Items, CheckItem{Label: c.Path, Status: StatusWarn, Detail: "directory missing"})
	case !info.IsDir():
		result.Items = append(result.Items, CheckItem{Label: c.Path, Status: StatusFail, Detail: "parent is not a directory"})
	default:
		result.Items = append(result.Items, CheckItem{Label: c.Path, Status: StatusPass})
	}
	return result
}
