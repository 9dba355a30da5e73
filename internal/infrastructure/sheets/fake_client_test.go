package sheets

import (
	"context"
	"errors"
)

var errStoreDown = errors.New("store caído")

type recordedWrite struct {
	rangeSpec string
	rows      [][]string
	inputMode string
}

// fakeSheetsClient cliente en memoria que registra cada escritura
type fakeSheetsClient struct {
	rows     map[string][][]string
	readErr  error
	writeErr error
	writes   []recordedWrite
	appends  []recordedWrite
}

func newFakeSheetsClient() *fakeSheetsClient {
	return &fakeSheetsClient{rows: make(map[string][][]string)}
}

func (f *fakeSheetsClient) Read(ctx context.Context, rangeSpec string) ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.rows[rangeSpec], nil
}

func (f *fakeSheetsClient) Write(ctx context.Context, rangeSpec string, rows [][]string, inputMode string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, recordedWrite{rangeSpec: rangeSpec, rows: rows, inputMode: inputMode})
	return nil
}

func (f *fakeSheetsClient) Append(ctx context.Context, rangeSpec string, rows [][]string, inputMode string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.appends = append(f.appends, recordedWrite{rangeSpec: rangeSpec, rows: rows, inputMode: inputMode})
	return nil
}
