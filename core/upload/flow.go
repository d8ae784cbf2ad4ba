// Package upload implements the staged-file flow behind the attendance
// finalize screen: pick a photo, validate it locally, submit it as
// multipart together with JSON-stringified metadata.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"

	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core"
)

type (
	// StagedFile is transient, client-only state: it exists from selection
	// until submit or cancel and is never persisted.
	StagedFile struct {
		Name string
		MIME string
		Size int64
		Data []byte
	}

	// Flow stages at most one file at a time.
	Flow struct {
		maxSize int64

		mu     sync.Mutex
		staged *StagedFile
	}
)

func NewFlow(conf *core.Config) *Flow {
	return &Flow{maxSize: conf.Upload.MaxPhotoSize}
}

// SelectFile validates the file content and size locally and stages it.
// A rejected file is not staged and no request is issued.
func (f *Flow) SelectFile(name string, r io.Reader) error {
	// read at most one byte past the limit so an oversized selection is
	// rejected without buffering the whole file
	data, err := io.ReadAll(io.LimitReader(r, f.maxSize+1))
	if err != nil {
		return errors.Wrap(err, "reading file")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mime, err := DetectImageMIME(head)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "photo", Error: err.Error()})
	}
	if int64(len(data)) > f.maxSize {
		sizeErr := fmt.Errorf("file exceeds the %dMB limit", f.maxSize>>20)
		return core.NewValidationError(sizeErr, core.FieldError{Field: "photo", Error: sizeErr.Error()})
	}

	f.mu.Lock()
	f.staged = &StagedFile{Name: name, MIME: mime, Size: int64(len(data)), Data: data}
	f.mu.Unlock()
	return nil
}

// Staged returns the currently staged file, nil when none.
func (f *Flow) Staged() *StagedFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staged
}

// Clear discards the staged file (the cancel action).
func (f *Flow) Clear() {
	f.mu.Lock()
	f.staged = nil
	f.mu.Unlock()
}

// Submit posts the staged file with its metadata fields JSON-stringified
// alongside it. On success the staged file is cleared; on failure it is
// kept so a transient error does not force re-selection.
func (f *Flow) Submit(ctx context.Context, api *apiclient.Client, path, date string, metadata interface{}) error {
	f.mu.Lock()
	staged := f.staged
	f.mu.Unlock()
	if staged == nil {
		noFile := errors.New("no photo selected")
		return core.NewValidationError(noFile, core.FieldError{Field: "photo", Error: noFile.Error()})
	}

	fields := map[string]string{"date": date}
	if metadata != nil {
		meta, err := json.Marshal(metadata)
		if err != nil {
			return errors.Wrap(err, "marshalling metadata")
		}
		fields["records"] = string(meta)
	}

	env, err := api.PostMultipart(ctx, path, "photo", staged.Name, bytes.NewReader(staged.Data), fields)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		return err
	}

	f.Clear()
	return nil
}
